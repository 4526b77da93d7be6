// Package entry turns a grouped listing into a structured wine entry.
//
// A [Builder] walks the tokens of one group left to right and fills the
// fields of a [model.WineEntry] from their tags:
//
//   - vintage  -> Year (OCR look-alikes O/o and I/l are read as 0 and 1)
//   - price    -> Price, the largest value when glass and bottle prices appear
//   - red/white varietal -> Type and lower-cased Variety
//   - region   -> lower-cased Region
//   - country  -> lower-cased Country
//   - anything else is appended to Description
//
// Text that does not parse leaves the field unset; it is never an error.
package entry
