// Package ocr turns a photographed menu page into positioned tokens.
//
// The Tesseract engine is wrapped via gosseract and only compiled in with the
// "ocr" build tag, since it needs the Tesseract libraries on the system. On
// macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Then build with:
//
//	go build -tags ocr ./...
//
// Without the tag, [New] returns [ErrOCRNotEnabled]. Image preparation
// ([PrepareImage]) and word box conversion ([ToTokens]) are always available.
package ocr
