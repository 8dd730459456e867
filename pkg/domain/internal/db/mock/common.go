package mocks

// CallLog records the arguments of every invocation of a mocked method.
type CallLog[T any] []T

func (l CallLog[T]) Times() uint {
	return uint(len(l))
}

// Last returns the most recent invocation's arguments.
// It panics when nothing has been recorded.
func (l CallLog[T]) Last() T {
	return l[len(l)-1]
}
