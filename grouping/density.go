package grouping

const noiseLabel = -1

// densityCluster labels points of the matrix with cluster ids (>= 0) or
// noiseLabel. A point is a core point when at least minSamples points,
// itself included, lie within eps. Clusters grow from core points in index
// order; a point that hard-conflicts with any current member is skipped and
// stays available for later clusters. A seed that ends up alone is noise.
func densityCluster(m *Matrix, eps float64, minSamples int, conflicts func(i, j int) bool) []int {
	n := m.Size()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = noiseLabel
	}
	if n == 0 {
		return labels
	}

	// Neighborhoods in index order, self included
	neighbors := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || m.At(i, j) <= eps {
				neighbors[i] = append(neighbors[i], j)
			}
		}
	}

	isCore := func(i int) bool {
		return len(neighbors[i]) >= minSamples
	}

	next := 0
	for seed := 0; seed < n; seed++ {
		if labels[seed] != noiseLabel || !isCore(seed) {
			continue
		}

		members := []int{seed}
		inCluster := map[int]bool{seed: true}
		queue := []int{seed}

		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]

			for _, q := range neighbors[p] {
				if inCluster[q] || labels[q] != noiseLabel {
					continue
				}
				if conflictsWithAny(q, members, conflicts) {
					continue
				}
				inCluster[q] = true
				members = append(members, q)
				if isCore(q) {
					queue = append(queue, q)
				}
			}
		}

		if len(members) < minSamples {
			continue
		}
		for _, p := range members {
			labels[p] = next
		}
		next++
	}

	return labels
}

func conflictsWithAny(q int, members []int, conflicts func(i, j int) bool) bool {
	if conflicts == nil {
		return false
	}
	for _, p := range members {
		if conflicts(p, q) {
			return true
		}
	}
	return false
}
