package exec

import (
	"bytes"
	"io"
)

// PrefixWriter adds a prefix to each line of output
type PrefixWriter struct {
	prefix []byte
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that prefixes each line
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: writer,
	}
}

// Write prefixes every complete line in data. A trailing partial line is
// held until the next Write or Flush.
func (p *PrefixWriter) Write(data []byte) (int, error) {
	p.buffer = append(p.buffer, data...)

	for {
		idx := bytes.IndexByte(p.buffer, '\n')
		if idx < 0 {
			break
		}
		if err := p.writeLine(p.buffer[:idx+1]); err != nil {
			return 0, err
		}
		p.buffer = p.buffer[idx+1:]
	}

	return len(data), nil
}

// Flush writes any partial line left in the buffer.
func (p *PrefixWriter) Flush() error {
	if len(p.buffer) == 0 {
		return nil
	}
	line := append(p.buffer, '\n')
	p.buffer = nil
	return p.writeLine(line)
}

func (p *PrefixWriter) writeLine(line []byte) error {
	out := make([]byte, 0, len(p.prefix)+len(line))
	out = append(out, p.prefix...)
	out = append(out, line...)
	_, err := p.writer.Write(out)
	return err
}
