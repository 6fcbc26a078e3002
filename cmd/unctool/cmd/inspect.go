package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mriformats/go-unc/unc"
)

var (
	inspectFormat string
	inspectStats  bool
)

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.unc>",
	Short: "Print the decoded metadata of a UNC file",
	Long: `Decode a UNC file and print its title, dimensions, pixel format and
header metadata. With --format yaml the summary is emitted as a YAML
document; with --stats the pixel sample distribution is included.

Example:
  unctool inspect scan.unc --format yaml --stats`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := unc.Open(args[0])
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}
		logger.Debug().Int("slices", f.NumSlices()).Int("echoes", f.NumEchoes()).Msg("decoded")

		s := buildSummary(f)
		if inspectFormat == "yaml" {
			out, err := yaml.Marshal(s)
			if err != nil {
				return fmt.Errorf("encoding summary: %w", err)
			}
			fmt.Print(string(out))
			return nil
		}
		printSummary(s)
		return nil
	},
}

type pixelStats struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
}

type sliceSummary struct {
	Location float64 `yaml:"location"`
	EchoNum  int     `yaml:"echoNumber"`
	EchoTime float64 `yaml:"echoTime"`
}

type summary struct {
	Title       string  `yaml:"title"`
	PixelFormat string  `yaml:"pixelFormat"`
	Dimensions  []int   `yaml:"dimensions"`
	Min         *int32  `yaml:"min,omitempty"`
	Max         *int32  `yaml:"max,omitempty"`
	NumEchoes   int     `yaml:"numEchoes"`
	PatientID   string  `yaml:"patientID,omitempty"`
	Modality    string  `yaml:"modality,omitempty"`
	ScanDate    string  `yaml:"scanDate,omitempty"`
	SliceThick  float64 `yaml:"sliceThicknessMM,omitempty"`

	PixelSize []float64      `yaml:"pixelSizeMM,omitempty"`
	Slices    []sliceSummary `yaml:"slices,omitempty"`
	Stats     *pixelStats    `yaml:"pixelStats,omitempty"`
}

func buildSummary(f *unc.File) *summary {
	s := &summary{
		Title:       f.Title,
		PixelFormat: f.PixelFormat.String(),
		Dimensions:  f.Pixels.Shape(),
		NumEchoes:   f.NumEchoes(),
	}
	if f.ValidMaxMin {
		s.Min, s.Max = &f.Min, &f.Max
	}
	if h := f.Header; h != nil {
		s.PatientID = h.PatientID
		s.Modality = h.Modality
		s.SliceThick = h.SliceThickness
		s.PixelSize = h.PixelSize
		if !h.ScanDate.IsZero() {
			s.ScanDate = h.ScanDate.Format(time.RFC3339)
		}
	}
	for _, sl := range f.SliceInfo {
		s.Slices = append(s.Slices, sliceSummary{
			Location: sl.SliceLocation,
			EchoNum:  sl.EchoNumber(),
			EchoTime: sl.EchoTime,
		})
	}
	if inspectStats {
		st := f.Pixels.Stats()
		s.Stats = &pixelStats{Min: st.Min, Max: st.Max, Mean: st.Mean, StdDev: st.StdDev}
	}
	return s
}

func printSummary(s *summary) {
	fmt.Printf("Title:        %s\n", s.Title)
	fmt.Printf("Pixel format: %s\n", s.PixelFormat)
	fmt.Printf("Dimensions:   %v\n", s.Dimensions)
	if s.Min != nil {
		fmt.Printf("Min/Max:      %d / %d\n", *s.Min, *s.Max)
	}
	fmt.Printf("Echoes:       %d\n", s.NumEchoes)
	if s.PatientID != "" {
		fmt.Printf("Patient ID:   %s\n", s.PatientID)
	}
	if s.Modality != "" {
		fmt.Printf("Modality:     %s\n", s.Modality)
	}
	if s.ScanDate != "" {
		fmt.Printf("Scan date:    %s\n", s.ScanDate)
	}
	if s.Stats != nil {
		fmt.Printf("Pixel stats:  min=%.0f max=%.0f mean=%.2f stddev=%.2f\n",
			s.Stats.Min, s.Stats.Max, s.Stats.Mean, s.Stats.StdDev)
	}
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format: text or yaml")
	inspectCmd.Flags().BoolVar(&inspectStats, "stats", false, "Compute pixel sample statistics")
	rootCmd.AddCommand(inspectCmd)
}
