// Package source reads and writes the YAML documents around a generation run.
//
// The resource document is the input: an ordered mapping of resource names to
// ordered mappings of field names. JSON is accepted as well, being a subset of
// YAML. Order is significant and is read from yaml.Node, never from Go maps.
//
//	Story:
//	  epic:
//	    type: Epic or null
//	    description: The epic the story belongs to.
//	  labels: Array(Label)   # bare type, empty description
//	Label:
//	  name: {type: String}
//
// The declaration document is an output: the same layout, resources in
// emission order, each field carrying its declaration shape.
package source
