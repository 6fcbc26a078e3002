package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mriformats/go-unc/internal/nifti"
	"github.com/mriformats/go-unc/unc"
)

var convertVolumes int

// convertCmd represents the convert command.
var convertCmd = &cobra.Command{
	Use:   "convert <file.unc>",
	Short: "Convert a UNC file to NIfTI-1",
	Long: `Convert the pixel volume of a UNC file to one or more gzipped
.nii.gz files.

Multi-echo acquisitions are split into one file per echo, named
<name>_e<k>.nii.gz. With --volumes N the slice axis is additionally
split into N volumes, named <name>_v<j>.nii.gz (or
<name>_v<j>_e<k>.nii.gz when both apply).

Example:
  unctool convert pdt2.unc --volumes 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		name := strings.TrimSuffix(path, ".unc")

		f, err := unc.Open(path)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		logger.Debug().
			Ints("shape", f.Pixels.Shape()).
			Int("echoes", f.NumEchoes()).
			Msg("decoded")

		if f.NumEchoes() > 1 {
			echoes, err := f.SplitEchoes()
			if err != nil {
				return fmt.Errorf("splitting echoes: %w", err)
			}
			for k, echo := range echoes {
				if err := writeVolumes(echo, name, fmt.Sprintf("_e%d", k)); err != nil {
					return err
				}
			}
			return nil
		}
		return writeVolumes(f, name, "")
	},
}

// writeVolumes writes f (split into --volumes sub-volumes if requested) as
// NIfTI files named name[_v<j>]<suffix>.nii.gz.
func writeVolumes(f *unc.File, name, suffix string) error {
	if convertVolumes <= 1 {
		return writeNifti(f, name+suffix+".nii.gz")
	}
	vols, err := f.SplitVolumes(convertVolumes)
	if err != nil {
		return fmt.Errorf("splitting volumes: %w", err)
	}
	for j, vol := range vols {
		if err := writeNifti(vol, fmt.Sprintf("%s_v%d%s.nii.gz", name, j, suffix)); err != nil {
			return err
		}
	}
	return nil
}

func writeNifti(f *unc.File, path string) error {
	img := &nifti.Image{
		Shape:   f.Pixels.Shape(),
		Descrip: f.Title,
		Data:    f.Pixels.Data(),
	}
	if h := f.Header; h != nil {
		if len(h.PixelSize) == 2 {
			img.PixDim = []float64{h.PixelSize[0], h.PixelSize[1], h.SliceThickness}
		}
		img.SclSlope = h.IntensityRescaleSlope
		img.SclInter = h.IntensityRescaleIntercept
	}
	if err := nifti.WriteFile(path, img); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info().Str("output", path).Ints("shape", img.Shape).Msg("wrote volume")
	return nil
}

func init() {
	convertCmd.Flags().IntVar(&convertVolumes, "volumes", 1, "Number of interleaved volumes to split out")
	rootCmd.AddCommand(convertCmd)
}
