// Package bridge converts CSTN values to and from other text formats.
//
// YAML output keeps every CSTN distinction: tuples are sequences tagged
// !tuple and maps with container keys use YAML complex keys. JSON input
// accepts comments and trailing commas; JSON has no form for CSTN tuples
// or container keys, and CSTN has none for booleans, null or fractions.
package bridge
