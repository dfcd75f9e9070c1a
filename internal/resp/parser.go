package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

type Type byte

const (
	SimpleString Type = '+'
	Error        Type = '-'
	Integer      Type = ':'
	BulkString   Type = '$'
	Array        Type = '*'
)

var (
	ErrInvalidType   = errors.New("invalid RESP type")
	ErrInvalidFormat = errors.New("invalid RESP format")
	// ErrIncomplete means buf ends before the value does.
	ErrIncomplete = errors.New("incomplete RESP value")
)

const (
	// MaxBulkLen caps a declared bulk string length.
	MaxBulkLen = 512 << 20
	// MaxArrayLen caps a declared array length.
	MaxArrayLen = 1 << 20
	// MaxDepth caps array nesting.
	MaxDepth = 8
)

type Value struct {
	Type  Type
	Str   string
	Int   int64
	Array []Value
	Null  bool
}

// Decode reads one value from the front of buf and returns it together with
// the number of bytes it occupied.
func Decode(buf []byte) (Value, int, error) {
	return decode(buf, 0)
}

func decode(buf []byte, depth int) (Value, int, error) {
	if len(buf) == 0 {
		return Value{}, 0, ErrIncomplete
	}

	switch t := Type(buf[0]); t {
	case SimpleString, Error:
		line, n, err := readLine(buf[1:])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Type: t, Str: string(line)}, n + 1, nil
	case Integer:
		num, n, err := readInt(buf[1:])
		if err != nil {
			return Value{}, 0, fmt.Errorf("%w: invalid integer", err)
		}
		return Value{Type: Integer, Int: num}, n + 1, nil
	case BulkString:
		return decodeBulkString(buf)
	case Array:
		return decodeArray(buf, depth)
	default:
		return Value{}, 0, fmt.Errorf("%w: %q", ErrInvalidType, buf[0])
	}
}

func decodeBulkString(buf []byte) (Value, int, error) {
	length, n, err := readInt(buf[1:])
	if err != nil {
		return Value{}, 0, fmt.Errorf("%w: invalid bulk string length", err)
	}
	pos := n + 1

	if length == -1 {
		return Value{Type: BulkString, Null: true}, pos, nil
	}
	if length < 0 {
		return Value{}, 0, fmt.Errorf("%w: negative bulk string length", ErrInvalidFormat)
	}
	if length > MaxBulkLen {
		return Value{}, 0, fmt.Errorf("%w: bulk string length %d exceeds %d", ErrInvalidFormat, length, MaxBulkLen)
	}

	end := pos + int(length)
	if len(buf) < end+2 {
		return Value{}, 0, ErrIncomplete
	}
	if buf[end] != '\r' || buf[end+1] != '\n' {
		return Value{}, 0, fmt.Errorf("%w: missing CRLF after bulk string", ErrInvalidFormat)
	}

	return Value{Type: BulkString, Str: string(buf[pos:end])}, end + 2, nil
}

func decodeArray(buf []byte, depth int) (Value, int, error) {
	if depth >= MaxDepth {
		return Value{}, 0, fmt.Errorf("%w: arrays nested deeper than %d", ErrInvalidFormat, MaxDepth)
	}

	count, n, err := readInt(buf[1:])
	if err != nil {
		return Value{}, 0, fmt.Errorf("%w: invalid array length", err)
	}
	pos := n + 1

	if count == -1 {
		return Value{Type: Array, Null: true}, pos, nil
	}
	if count < 0 {
		return Value{}, 0, fmt.Errorf("%w: negative array length", ErrInvalidFormat)
	}
	if count > MaxArrayLen {
		return Value{}, 0, fmt.Errorf("%w: array length %d exceeds %d", ErrInvalidFormat, count, MaxArrayLen)
	}

	array := make([]Value, 0, min(count, 64))
	for range count {
		val, used, err := decode(buf[pos:], depth+1)
		if err != nil {
			return Value{}, 0, err
		}
		array = append(array, val)
		pos += used
	}

	return Value{Type: Array, Array: array}, pos, nil
}

// readLine returns the bytes up to CRLF and the length including CRLF.
func readLine(buf []byte) ([]byte, int, error) {
	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return nil, 0, ErrIncomplete
	}
	if i == 0 || buf[i-1] != '\r' {
		return nil, 0, fmt.Errorf("%w: missing CRLF", ErrInvalidFormat)
	}
	return buf[:i-1], i + 1, nil
}

func readInt(buf []byte) (int64, int, error) {
	line, n, err := readLine(buf)
	if err != nil {
		return 0, 0, err
	}

	num, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, 0, ErrInvalidFormat
	}
	return num, n, nil
}
