package score

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/staffline/pkg/errors"
)

// Format names a score file encoding.
type Format string

// Supported formats. MIDI can be read but not written.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatMIDI Format = "midi"
)

// FormatFromPath infers a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".mid", ".midi", ".smf":
		return FormatMIDI, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unrecognized score file extension: %q", filepath.Ext(path))
}

// ReadFile loads and validates a score, choosing the decoder by extension.
// MIDI imports without a title are named after the file.
func ReadFile(path string) (*Score, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open score %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, err
	}
	if s.Title == "" && format == FormatMIDI {
		s.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Read decodes and validates a score in the given format.
func Read(r io.Reader, format Format) (*Score, error) {
	var (
		s   *Score
		err error
	)
	switch format {
	case FormatMIDI:
		s, err = readSMF(r)
	case FormatTOML, FormatYAML, FormatJSON:
		s, err = decode(r, format)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown score format: %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decode(r io.Reader, format Format) (*Score, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var s Score
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s score", format)
	}
	return &s, nil
}

// Marshal encodes a score in the given format.
func Marshal(s *Score, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode toml score")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode yaml score")
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode json score")
		}
		return append(data, '\n'), nil
	case FormatMIDI:
		return nil, errs.New(errs.ErrCodeUnsupported, "writing MIDI files is not supported")
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown score format: %q", format)
}

// WriteFile encodes a score using the format implied by path.
func WriteFile(s *Score, path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(s, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
