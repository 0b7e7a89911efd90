package main

import (
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/archivekit/pictraster/internal/codec"
	"github.com/archivekit/pictraster/internal/geom"
	"github.com/archivekit/pictraster/internal/logging"
)

func main() {
	tagFlag := flag.String("tag", codec.TagPackBits, "codec tag (\"rle \", \"pack\", \"tga \")")
	widthFlag := flag.Int("width", 0, "declared image width in pixels")
	heightFlag := flag.Int("height", 0, "declared image height in pixels")
	depthFlag := flag.Int("depth", 8, "declared bits per pixel")
	outFlag := flag.String("out", "out.png", "output file (.png or .bmp)")
	logLevelFlag := flag.String("log-level", "info", "log level (debug, info, warn, error)")

	flag.Parse()

	logging.SetLevelFromString(*logLevelFlag)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "USAGE: pictdump [options] <payload-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *tagFlag, *widthFlag, *heightFlag, *depthFlag, *outFlag); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}

func run(payloadPath, tag string, width, height, depth int, outPath string) error {
	if width <= 0 || width > math.MaxInt16 || height <= 0 || height > math.MaxInt16 {
		return fmt.Errorf("dimensions %dx%d outside 16-bit coordinate range", width, height)
	}

	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	pm, err := codec.Decode(payload, codec.Options{
		Tag: tag,
		Dim: geom.Delta{
			DV: geom.FixedFromInt(int16(height)),
			DH: geom.FixedFromInt(int16(width)),
		},
		Depth: depth,
		CLUT:  defaultCLUT(depth),
	})
	if err != nil {
		return fmt.Errorf("decode %q: %w", payloadPath, err)
	}

	logging.Info("decoded %s: %dx%d depth=%d rowBytes=%d",
		payloadPath, pm.Width(), pm.Height(), pm.Depth(), pm.RowBytes())

	img, err := codec.ToImage(pm)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".bmp":
		err = bmp.Encode(out, img)
	default:
		err = png.Encode(out, img)
	}
	if err != nil {
		return fmt.Errorf("encode %q: %w", outPath, err)
	}

	return nil
}

// defaultCLUT builds a grayscale ramp for indexed depths, enough to
// inspect payloads whose real color table lives elsewhere in the
// document.
func defaultCLUT(depth int) *codec.ColorTable {
	if depth > 8 {
		return nil
	}

	n := 1 << depth
	colors := make([]codec.RGB, n)
	for i := range colors {
		v := uint16(i * 0xFFFF / (n - 1))
		colors[i] = codec.RGB{R: v, G: v, B: v}
	}
	return &codec.ColorTable{Colors: colors}
}
