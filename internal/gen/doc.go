// Package gen renders a declaration document as Go source.
//
// Generation uses text/template + go/format. The output is one file holding,
// in emission order, a struct type per schema. Fields map as follows:
//   - Scalar tokens through the scalar table (unknown tokens become
//     json.RawMessage)
//   - Constrained strings to a named string type with constants and a Valid
//     method, declared just before the struct
//   - Nested schemas to the schema's struct type
//   - Collections to slices of the element type
//
// Nullable fields and self references render as pointers. Descriptions
// become field comments wrapped at 73 columns.
package gen
