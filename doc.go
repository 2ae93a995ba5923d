// Package structview serializes a runtime-chosen subset of a struct's
// fields without defining a separate output type per subset.
//
// For each struct type the package derives a closed, declaration-ordered
// field catalog once. Field identifiers are generic over the record type,
// so an identifier of one type cannot be used with another. A View pairs
// a borrowed record with a selected field set:
//
//	type Product struct {
//		Id   string   `json:"id"`
//		Name string   `json:"name"`
//		Tags []string `json:"tags"`
//	}
//
//	view := structview.AsView(&product).WithFields(
//		structview.MustFieldOf[Product]("id"),
//		structview.MustFieldOf[Product]("name"),
//	)
//	data, err := json.Marshal(view)
//
// A freshly constructed View selects all fields, so an unmodified View
// serializes identically to the bare record. Selected fields are emitted
// in declaration order regardless of selection order, each encoded with
// the same bytes Marshal would produce for the full record.
//
// Serialization is a pure read. Multiple Views may borrow the same record
// concurrently as long as nothing writes to the record meanwhile; the
// package performs no synchronization on the record itself. A View must
// not be retained past the lifetime of the record it borrows.
package structview
