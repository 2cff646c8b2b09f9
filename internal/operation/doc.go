// Package operation is the runtime shared by all nodes.
//
// A node declares itself with an api.NodeDescription and implements Node.
// Run drives it over the input items of one execution:
//   - resource and operation are read once, from the first item
//   - parameters are resolved per item through Params, falling back to the
//     declared defaults
//   - each result is flattened into output records
//   - a failing item either aborts the run or, with continue-on-fail,
//     becomes an error record paired with its input index
//
// Request helpers in the node packages translate transport failures into
// *Error values using a per-node StatusMessages table. Nothing is retried.
package operation
