package engine

import "reflect"

// Component identifies a component type for registration and removal
// calls. TypeOf builds one from a zero value of the component struct.
type Component = reflect.Type

// TypeOf returns the Component identifier for a zero value of T.
func TypeOf[T any]() Component {
	var zero T
	return reflect.TypeOf(zero)
}
