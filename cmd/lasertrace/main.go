// Command lasertrace runs the raster-to-laser-vector pipeline on a single
// image file and writes the full, cut, and engrave documents to disk.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lasertrace/internal/imageio"
	"lasertrace/internal/pipeline"
	"lasertrace/internal/preview"
	"lasertrace/internal/raster"
	"lasertrace/internal/vector"
	"lasertrace/internal/version"
)

func main() {
	inputPath := flag.String("input", "", "Path to the source image (PNG, JPEG, TIFF, or BMP)")
	outDir := flag.String("out-dir", ".", "Directory to write the output documents into")
	detail := flag.Int("detail", pipeline.DefaultParams.DetailLevel, "Detail level, 0-100")
	centerlineSensitivity := flag.Int("centerline-sensitivity", pipeline.DefaultParams.CenterlineSensitivity, "Centerline sensitivity, 0-100")
	writePreview := flag.Bool("preview", false, "Also render a rasterized preview PNG of each layer")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("lasertrace %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *inputPath == "" {
		fmt.Printf("Usage: lasertrace -input <path> [-out-dir dir] [-detail 50] [-centerline-sensitivity 50] [-preview]\n")
		fmt.Printf("Supported input formats: %s\n", strings.Join(imageio.SupportedFormats(), ", "))
		os.Exit(1)
	}

	if ext := strings.ToLower(filepath.Ext(*inputPath)); !supportedExt(ext) {
		fmt.Fprintf(os.Stderr, "Unsupported input format %q; supported formats: %s\n", ext, strings.Join(imageio.SupportedFormats(), ", "))
		os.Exit(1)
	}

	buf, err := imageio.Load(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s: %dx%d pixels\n", *inputPath, buf.Width, buf.Height)

	params := pipeline.Params{DetailLevel: *detail, CenterlineSensitivity: *centerlineSensitivity}
	fmt.Printf("Running pipeline with detailLevel=%d centerlineSensitivity=%d\n", params.DetailLevel, params.CenterlineSensitivity)

	result, err := pipeline.Process(buf.Pix, buf.Width, buf.Height, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(*inputPath), filepath.Ext(*inputPath))
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	documents := map[string]string{
		"full":    result.Full.String(),
		"cut":     result.Cut.String(),
		"engrave": result.Engrave.String(),
	}
	for name, body := range documents {
		outPath := filepath.Join(*outDir, fmt.Sprintf("%s.%s.svg", base, name))
		if err := imageio.WriteDocument(outPath, body); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", outPath)
	}

	result.Stats.OutputSize = len(documents["full"])
	statsPath := filepath.Join(*outDir, base+".stats.json")
	statsJSON, err := json.MarshalIndent(result.Stats, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal stats: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(statsPath, statsJSON, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", statsPath)

	fmt.Printf("\nOutline paths: %d, Centerline paths: %d, Total: %d\n",
		result.Stats.OutlineCount, result.Stats.CenterlineCount, result.Stats.TotalPaths)

	if *writePreview {
		layers := []struct {
			name  string
			paths []vector.OptimizedPath
		}{
			{"full", result.FullPaths},
			{"cut", result.CutPaths},
			{"engrave", result.EngravePaths},
		}
		for _, l := range layers {
			previewPath := filepath.Join(*outDir, fmt.Sprintf("%s.%s.preview.png", base, l.name))
			if err := preview.Save(l.paths, buf.Width, buf.Height, raster.Padding, previewPath); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write preview %s: %v\n", previewPath, err)
				continue
			}
			fmt.Printf("Wrote %s\n", previewPath)
		}
	}
}

func supportedExt(ext string) bool {
	for _, f := range imageio.SupportedFormats() {
		if f == ext {
			return true
		}
	}
	return false
}
