// Package recognizer wraps the external OCR engine behind a small interface
// so the pipeline can be tested without tesseract installed.
package recognizer

import (
	"bytes"
	"fmt"
	"os/exec"

	"trip-audit/internal/parsererror"
)

// TextExtractor extracts recognized text from an image file.
// It isolates the rest of the pipeline from the OCR engine: image in, raw
// text out, no confidence information.
type TextExtractor interface {
	// ExtractText returns the recognized text of the image at the given path.
	// Failures are reported as *parsererror.RecognitionError.
	ExtractText(imagePath string) (string, error)
}

// TesseractExtractor implements TextExtractor by invoking the tesseract
// command-line tool. This is the production implementation and requires
// tesseract to be installed.
type TesseractExtractor struct {
	// Binary is the tesseract binary name or absolute path.
	Binary string
	// Language is the recognition language passed via -l.
	Language string
}

// NewTesseractExtractor creates a TesseractExtractor, defaulting to the
// "tesseract" binary on PATH and English recognition.
func NewTesseractExtractor(binary, language string) *TesseractExtractor {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &TesseractExtractor{Binary: binary, Language: language}
}

// ExtractText runs `tesseract <image> stdout -l <lang>` and returns its output.
func (e *TesseractExtractor) ExtractText(imagePath string) (string, error) {
	cmd := exec.Command(e.Binary, imagePath, "stdout", "-l", e.Language)

	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		return "", &parsererror.RecognitionError{
			ImagePath: imagePath,
			Err:       fmt.Errorf("tesseract: %w (stderr: %s)", err, errb.String()),
		}
	}
	return out.String(), nil
}

// MockExtractor implements TextExtractor for testing purposes. It returns
// predefined text per image path instead of invoking an OCR engine.
type MockExtractor struct {
	// Texts maps image paths to the text to return.
	Texts map[string]string
	// Err, when set, is returned for any path missing from Texts.
	Err error
}

// ExtractText returns the predefined text or error for the given path.
func (e *MockExtractor) ExtractText(imagePath string) (string, error) {
	if text, ok := e.Texts[imagePath]; ok {
		return text, nil
	}
	if e.Err != nil {
		return "", &parsererror.RecognitionError{ImagePath: imagePath, Err: e.Err}
	}
	return "", &parsererror.RecognitionError{
		ImagePath: imagePath,
		Err:       fmt.Errorf("no mock text registered"),
	}
}
