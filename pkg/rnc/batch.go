package rnc

// Accumulator buffers records until the configured batch size is reached.
// It is a plain in-memory buffer and is not safe for concurrent use.
type Accumulator struct {
	size    int
	records []Record
}

// NewAccumulator creates an Accumulator that is full at size records.
// Sizes below 1 are treated as 1.
func NewAccumulator(size int) *Accumulator {
	size = max(size, 1)
	return &Accumulator{
		size:    size,
		records: make([]Record, 0, size),
	}
}

// Add appends a record to the buffer.
func (a *Accumulator) Add(r Record) {
	a.records = append(a.records, r)
}

// IsFull reports whether the buffer reached the batch size.
func (a *Accumulator) IsFull() bool {
	return len(a.records) >= a.size
}

// Len returns the number of buffered records.
func (a *Accumulator) Len() int {
	return len(a.records)
}

// Size returns the configured batch size.
func (a *Accumulator) Size() int {
	return a.size
}

// Drain returns the buffered records and leaves the buffer empty.
// The returned slice is owned by the caller.
func (a *Accumulator) Drain() []Record {
	res := a.records
	a.records = make([]Record, 0, a.size)
	return res
}
