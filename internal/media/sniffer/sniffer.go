package sniffer

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
)

// Session galleries hold raster photos only. Anything else (SVG, video,
// documents) is rejected at upload time.
type PhotoType string

const (
	TypeJPEG PhotoType = "jpeg"
	TypePNG  PhotoType = "png"
	TypeGIF  PhotoType = "gif"
	TypeWEBP PhotoType = "webp"
)

var ErrUnsupportedType = errors.New("unsupported photo type")

type Result struct {
	Type PhotoType
	MIME string
}

// DetectHead inspects the leading bytes of an upload and identifies the photo
// format by magic numbers, ignoring the client-declared content type.
func DetectHead(head []byte) (Result, error) {
	switch {
	case isJPEG(head):
		return Result{Type: TypeJPEG, MIME: "image/jpeg"}, nil
	case isPNG(head):
		return Result{Type: TypePNG, MIME: "image/png"}, nil
	case isGIF(head):
		return Result{Type: TypeGIF, MIME: "image/gif"}, nil
	case isWEBP(head):
		return Result{Type: TypeWEBP, MIME: "image/webp"}, nil
	}
	return Result{}, ErrUnsupportedType
}

func isJPEG(head []byte) bool {
	return len(head) > 3 && head[0] == 0xff && head[1] == 0xd8 && head[2] == 0xff
}

func isPNG(head []byte) bool {
	magic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return len(head) >= len(magic) && bytes.Equal(head[:len(magic)], magic)
}

func isGIF(head []byte) bool {
	return len(head) >= 6 &&
		(bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WEBP"))
}

// DeclaredMIME extracts the bare media type from a multipart part header.
func DeclaredMIME(header http.Header) string {
	contentType := header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}
