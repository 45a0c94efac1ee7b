package source

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// decode converts raw file bytes to text and reports the encoding flags
// needed to restore the exact byte form on write.
func decode(content []byte) (string, FileFlags, error) {
	switch {
	case bytes.HasPrefix(content, []byte{0xFF, 0xFE}):
		text, err := utf16Encoding(unicode.LittleEndian).NewDecoder().Bytes(content)
		if err != nil {
			return "", 0, fmt.Errorf("decode utf-16le: %w", err)
		}
		return string(text), FileUTF16LE | FileHadBOM, nil
	case bytes.HasPrefix(content, []byte{0xFE, 0xFF}):
		text, err := utf16Encoding(unicode.BigEndian).NewDecoder().Bytes(content)
		if err != nil {
			return "", 0, fmt.Errorf("decode utf-16be: %w", err)
		}
		return string(text), FileUTF16BE | FileHadBOM, nil
	}
	content, hadBOM := removeBOM(content)
	if hadBOM {
		return string(content), FileHadBOM, nil
	}
	return string(content), 0, nil
}

// encode is the inverse of decode.
func encode(text string, flags FileFlags) ([]byte, error) {
	switch {
	case flags&FileUTF16LE != 0:
		out, err := utf16Encoding(unicode.LittleEndian).NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode utf-16le: %w", err)
		}
		return out, nil
	case flags&FileUTF16BE != 0:
		out, err := utf16Encoding(unicode.BigEndian).NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode utf-16be: %w", err)
		}
		return out, nil
	case flags&FileHadBOM != 0:
		return append(append([]byte(nil), utf8BOM...), text...), nil
	}
	return []byte(text), nil
}

// utf16Encoding strips the BOM on decode and writes it back on encode.
func utf16Encoding(order unicode.Endianness) encoding.Encoding {
	return unicode.UTF16(order, unicode.UseBOM)
}
