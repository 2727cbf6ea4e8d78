package tensor

import "fmt"

// ShapeError reports a tensor whose rank, channel count or dimensions do
// not match what an operation requires.
type ShapeError struct {
	Op   string
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}
