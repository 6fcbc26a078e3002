package unc

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// fixture builds synthetic UNC images in memory for decoder tests.
// Sections are laid out contiguously in address-table order; individual
// addresses can be overridden to simulate corrupt files.
type fixture struct {
	title       string
	titleRaw    []byte // overrides title when set; must be <= 81 bytes
	validMaxMin bool
	min, max    int32
	validHist   bool
	histogram   []int32 // nil means 1024 zero bins
	pixelFormat int32
	dimc        int32
	dimv        []int32
	pixels      []int16 // nil means sequential samples
	records     []string
	rawInfo     []byte // overrides records when set

	overrideAddr map[section]int32
	truncate     int // final image length when > 0
}

// greyShort is GREY|SHORT, the format of every real UNC file seen.
const greyShort = 0o012

func (fx fixture) pixelCount() int {
	count := 1
	for i := 0; i < int(fx.dimc) && i < len(fx.dimv); i++ {
		count *= int(fx.dimv[i])
	}
	return count
}

func (fx fixture) build() []byte {
	be := func(w *bytes.Buffer, v interface{}) {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			panic(err)
		}
	}

	titleField := make([]byte, titleSize)
	if fx.titleRaw != nil {
		copy(titleField, fx.titleRaw)
	} else {
		copy(titleField, fx.title)
	}

	hist := fx.histogram
	if hist == nil {
		hist = make([]int32, histogramBins)
	}

	var dimv [maxDims]int32
	copy(dimv[:], fx.dimv)

	pixels := fx.pixels
	if pixels == nil {
		pixels = make([]int16, fx.pixelCount())
		for i := range pixels {
			pixels[i] = int16(i)
		}
	}

	info := fx.rawInfo
	if info == nil {
		var b bytes.Buffer
		for _, rec := range fx.records {
			b.WriteString(rec)
			b.WriteByte(0)
		}
		info = b.Bytes()
	}

	flag := func(v bool) int32 {
		if v {
			return 1
		}
		return 0
	}

	var maxmin, histo, pf, dimcB, dimvB, pix bytes.Buffer
	be(&maxmin, []int32{flag(fx.validMaxMin), fx.min, fx.max})
	be(&histo, flag(fx.validHist))
	be(&histo, hist)
	be(&pf, fx.pixelFormat)
	be(&dimcB, fx.dimc)
	be(&dimvB, dimv[:])
	be(&pix, pixels)

	payloads := []struct {
		sec  section
		data []byte
	}{
		{secMaxMin, maxmin.Bytes()},
		{secHistogram, histo.Bytes()},
		{secTitle, titleField},
		{secPixelFormat, pf.Bytes()},
		{secDimCount, dimcB.Bytes()},
		{secDimVector, dimvB.Bytes()},
		{secPixels, pix.Bytes()},
		{secInfo, info},
	}

	var addrs [numSections]int32
	offset := int32(4 * numSections)
	for _, p := range payloads {
		addrs[p.sec] = offset
		offset += int32(len(p.data))
	}
	for sec, addr := range fx.overrideAddr {
		addrs[sec] = addr
	}

	var out bytes.Buffer
	be(&out, addrs[:])
	for _, p := range payloads {
		out.Write(p.data)
	}

	img := out.Bytes()
	if fx.truncate > 0 && fx.truncate < len(img) {
		img = img[:fx.truncate]
	}
	return img
}

// testHeaderRecord is a plausible global header record.
const testHeaderRecord = `Patient_Name=Anonymous
Patient_ID=ANON01
Patient_Birth_Date=January 1, 1970
Scan_Date=July 14, 2013 14:32 PM
Modality=MR
Scanning_Sequence=SE
Flip_Angle=90.0
Slice_Thickness_mm=3.0
Pixel_Size=0.9375\0.9375
Intensity_Rescale_Units=US
Intensity_Rescale_Slope=1.0
Intensity_Rescale_Intercept=0.0
<0x0008, 0x0020> Date, ID Study Date=20130714`

// sliceRecord builds a per-slice record with the given echo number, echo
// time and slice location.
func sliceRecord(echo int, echoTime, location float64) string {
	return fmt.Sprintf(`Echo_Time=%g
<0x0018, 0x0086> Integer String, ACQ Echo Number=%d
<0x0020, 0x1041> Decimal String, REL Slice Location=%g
<0x0020, 0x0032> Decimal String, REL Image Position (Patient)=-120.5\-110.2\%g`,
		echoTime, echo, location, location)
}

// singleEchoRecords builds a header record plus n slice records with
// ascending locations.
func singleEchoRecords(n int) []string {
	records := []string{testHeaderRecord}
	for i := 0; i < n; i++ {
		records = append(records, sliceRecord(1, 0.018888, float64(i)*3.0))
	}
	return records
}

// basicFixture is a decodable 4x4x4 single-echo image.
func basicFixture() fixture {
	return fixture{
		title:       "BRAIN",
		validMaxMin: true,
		min:         0,
		max:         693,
		pixelFormat: greyShort,
		dimc:        3,
		dimv:        []int32{4, 4, 4},
		records:     singleEchoRecords(4),
	}
}
