package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
)

// Body is a request payload.
type Body interface {
	encode() (io.Reader, string, error)
}

type jsonBody struct {
	value any
}

// JSON encodes v as a JSON request body.
func JSON(v any) Body {
	return jsonBody{value: v}
}

func (b jsonBody) encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.value)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// File is a file part of a multipart body.
type File struct {
	Field    string
	Filename string
	Content  io.Reader
}

type multipartBody struct {
	fields map[string]string
	files  []File
}

// Multipart encodes fields and files as a multipart/form-data body. Fields are written in key order.
func Multipart(fields map[string]string, files ...File) Body {
	return multipartBody{fields: fields, files: files}
}

func (b multipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, b.fields[k]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	for _, f := range b.files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
