package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"xtread/internal/source"
)

// Cursor представляет собой позицию в файле
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, end: end}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.end
}

// Len возвращает длину входа.
func (c *Cursor) Len() uint32 {
	return c.end
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt читает байт со смещением n от курсора; за концом входа возвращает 0, false.
func (c *Cursor) PeekAt(n uint32) (byte, bool) {
	if c.Off+n >= c.end {
		return 0, false
	}
	return c.File.Content[c.Off+n], true
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.end {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Prev возвращает байт перед курсором.
func (c *Cursor) Prev() (byte, bool) {
	if c.Off == 0 || c.Off > c.end {
		return 0, false
	}
	return c.File.Content[c.Off-1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Advance сдвигает курсор на n байт, не выходя за конец входа.
func (c *Cursor) Advance(n uint32) {
	c.Off = min(c.Off+n, c.end)
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatString consumes lit if the input continues with it.
func (c *Cursor) EatString(lit string) bool {
	n, err := safecast.Conv[uint32](len(lit))
	if err != nil || c.Off+n > c.end {
		return false
	}
	if string(c.File.Content[c.Off:c.Off+n]) != lit {
		return false
	}
	c.Off += n
	return true
}
