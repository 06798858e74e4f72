package container

import "reflect"

// As resolves key and asserts the component to T. It returns a
// TypeMismatchError when the registered component does not satisfy T.
func As[T any](c *Container, key string) (T, error) {
	v, err := c.Resolve(key)
	return assertAs[T](key, v, err)
}

// ResolveAs is the build-func counterpart of As: it resolves key through
// bc so the in-flight resolution chain keeps detecting cycles, then
// asserts the component to T.
func ResolveAs[T any](bc BuildContext, key string) (T, error) {
	v, err := bc.Resolve(key)
	return assertAs[T](key, v, err)
}

func assertAs[T any](key string, v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		got := "<nil>"
		if v != nil {
			got = reflect.TypeOf(v).String()
		}
		return zero, &TypeMismatchError{
			Key:      key,
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:      got,
		}
	}
	return t, nil
}
