/*
Package conftree models configuration as a tree of named nodes, each
carrying string attributes and ordered children.

Trees are usually parsed from YAML with FromYAML, which preserves document
order (the first "factory" entry in the file is the first "factory" child),
or built programmatically with the fluent Builder. Attribute values stay
strings until a consumer decodes them; DecodeAttrs performs weakly typed
decoding into tagged structs.
*/
package conftree
