package unc

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Header is the global metadata record of a UNC file, parsed from the first
// info-section record. Recognized fields are decoded into typed members;
// every key=value line additionally lands raw in Fields, and DICOM dump
// lines land typed in DicomHeader. Malformed field values are tolerated:
// the typed member stays zero and the raw line is preserved.
type Header struct {
	PatientName      string
	PatientID        string
	PatientBirthDate time.Time
	ScanDate         time.Time
	Modality         string
	ScanningSequence string
	SequenceVariant  string
	FlipAngle        float64
	SliceThickness   float64

	ImageOrientationPatient []float64
	ImagePositionPatient    []float64
	PixelSize               []float64

	IntensityRescaleUnits     string
	IntensityRescaleSlope     float64
	IntensityRescaleIntercept float64
	ColourMapping             string

	// DicomHeader maps DICOM element names to typed values: string,
	// float64, int, []float64, []int or time.Time depending on the
	// element's declared type.
	DicomHeader map[string]interface{}

	// Fields holds every key=value line of the record, unparsed.
	Fields map[string]string

	// Text is the raw record.
	Text string
}

// SliceHeader is the per-slice metadata record, parsed from one
// info-section record.
type SliceHeader struct {
	// EchoTime is the Echo_Time field in seconds, 0 when absent.
	EchoTime float64

	// SliceLocation is the "Slice Location" DICOM value used to order
	// slices anatomically; HasSliceLocation reports whether it was
	// present and numeric.
	SliceLocation    float64
	HasSliceLocation bool

	// ImagePositionPatient is the "Image Position (Patient)" DICOM value,
	// nil when absent.
	ImagePositionPatient []float64

	DicomHeader map[string]interface{}
	Fields      map[string]string
	Text        string
}

// Date layouts used by the scanner software that produced UNC files.
var (
	dobLayout       = "January 2, 2006"
	scanDateLayouts = []string{"January 2, 2006 15:04 PM", "January 2, 2006 3:04 PM"}
)

// dicomLineRE matches DICOM dump lines of the form
//
//	<0x0018, 0x0081> Decimal String, ACQ Echo Time=85.0
//
// capturing the value type, element name and raw value.
var dicomLineRE = regexp.MustCompile(`^<0x[0-9a-f]{4},\s0x[0-9a-f]{4}>\s([\w\s()]+),\s(?:ID|REL|ACQ)?\s([\w\s()]+)=(.*)$`)

// ParseHeader parses the global header record.
func ParseHeader(text string) *Header {
	h := &Header{
		DicomHeader: map[string]interface{}{},
		Fields:      map[string]string{},
		Text:        text,
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "<0x") {
			parseDicomLine(line, h.DicomHeader)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		h.Fields[strings.TrimSpace(key)] = value
		value = strings.TrimSpace(value)
		switch key {
		case "Patient_Name":
			h.PatientName = value
		case "Patient_ID":
			h.PatientID = value
		case "Patient_Birth_Date":
			if t, err := time.Parse(dobLayout, value); err == nil {
				h.PatientBirthDate = t
			}
		case "Scan_Date":
			for _, layout := range scanDateLayouts {
				if t, err := time.Parse(layout, value); err == nil {
					h.ScanDate = t
					break
				}
			}
		case "Modality":
			h.Modality = value
		case "Scanning_Sequence":
			h.ScanningSequence = value
		case "Sequence_Variant":
			h.SequenceVariant = value
		case "Flip_Angle":
			h.FlipAngle, _ = strconv.ParseFloat(value, 64)
		case "Slice_Thickness_mm":
			h.SliceThickness, _ = strconv.ParseFloat(value, 64)
		case "Image_Orientation_Patient_Coordinates":
			h.ImageOrientationPatient = parseFloats(value)
		case "Image_Position_Patient_Coordinates":
			h.ImagePositionPatient = parseFloats(value)
		case "Pixel_Size":
			h.PixelSize = parseFloats(value)
		case "Intensity_Rescale_Units":
			h.IntensityRescaleUnits = value
		case "Intensity_Rescale_Slope":
			h.IntensityRescaleSlope, _ = strconv.ParseFloat(value, 64)
		case "Intensity_Rescale_Intercept":
			h.IntensityRescaleIntercept, _ = strconv.ParseFloat(value, 64)
		case "Colour_Mapping":
			h.ColourMapping = value
		}
	}
	return h
}

// ParseSliceHeader parses one per-slice record.
func ParseSliceHeader(text string) *SliceHeader {
	s := &SliceHeader{
		DicomHeader: map[string]interface{}{},
		Fields:      map[string]string{},
		Text:        text,
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "<0x") {
			parseDicomLine(line, s.DicomHeader)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		s.Fields[strings.TrimSpace(key)] = value
		if key == "Echo_Time" {
			s.EchoTime, _ = strconv.ParseFloat(strings.TrimSpace(value), 64)
		}
	}
	if loc, ok := s.DicomHeader["Slice Location"].(float64); ok {
		s.SliceLocation = loc
		s.HasSliceLocation = true
	}
	if pos, ok := s.DicomHeader["Image Position (Patient)"].([]float64); ok {
		s.ImagePositionPatient = pos
	}
	return s
}

// EchoNumber returns the "Echo Number" DICOM value, or 0 when the record
// has none.
func (s *SliceHeader) EchoNumber() int {
	if n, ok := s.DicomHeader["Echo Number"].(int); ok {
		return n
	}
	return 0
}

// parseDicomLine decodes one DICOM dump line into dst, converting the value
// according to its declared type. Lines that do not match the dump format
// are ignored.
func parseDicomLine(line string, dst map[string]interface{}) {
	m := dicomLineRE.FindStringSubmatch(line)
	if m == nil {
		return
	}
	dataType, name, raw := m[1], m[2], m[3]

	var value interface{} = raw
	switch dataType {
	case "Date":
		if t, err := time.Parse("20060102", raw); err == nil {
			value = t
		}
	case "Time":
		hms, _, _ := strings.Cut(raw, ".")
		if t, err := time.Parse("150405", hms); err == nil {
			value = t
		}
	case "Decimal String":
		if strings.Contains(raw, `\`) {
			value = parseFloats(raw)
		} else if v, err := strconv.ParseFloat(raw, 64); err == nil {
			value = v
		}
	case "Integer String":
		if strings.Contains(raw, `\`) {
			value = parseInts(raw)
		} else if v, err := strconv.Atoi(raw); err == nil {
			value = v
		}
	}
	dst[name] = value
}

// parseFloats splits a backslash-separated DICOM multi-value into floats.
func parseFloats(s string) []float64 {
	parts := strings.Split(s, `\`)
	out := make([]float64, len(parts))
	for i, p := range parts {
		out[i], _ = strconv.ParseFloat(strings.TrimSpace(p), 64)
	}
	return out
}

// parseInts splits a backslash-separated DICOM multi-value into ints.
func parseInts(s string) []int {
	parts := strings.Split(s, `\`)
	out := make([]int, len(parts))
	for i, p := range parts {
		out[i], _ = strconv.Atoi(strings.TrimSpace(p))
	}
	return out
}
