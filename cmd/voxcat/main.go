// Command voxcat loads, inspects, and round-trips Binary Cube Format
// (.bcf) files, and can voxel-path a single leaf for inspection or
// mutation.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/draw"

	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/bcf"
)

var (
	in      = flag.String("in", "", "input .bcf file")
	out     = flag.String("out", "", "output .bcf file (round-trip/set commands)")
	cmd     = flag.String("cmd", "inspect", "inspect | roundtrip | get | set | png")
	path    = flag.String("path", "", "octant-letter path (a-h per level), e.g. \"aab\"")
	value   = flag.Int("value", 0, "material value for -cmd=set")
	pngPath = flag.String("png", "", "write a cross-section debug PNG to this path (used with -cmd=png)")
	pngSize = flag.Int("pngsize", 256, "output PNG side length in pixels")
	depth   = flag.Uint("depth", 6, "cross-section sampling depth for -cmd=png")
)

func main() {
	flag.Parse()
	if *in == "" {
		fmt.Println("voxcat: -in file is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal(err)
	}
	root, err := bcf.Parse(data)
	if err != nil {
		log.Fatal("parse: ", err)
	}

	switch *cmd {
	case "inspect":
		inspect(root, len(data))
	case "roundtrip":
		roundtrip(root)
	case "get":
		get(root)
	case "set":
		set(root)
	case "png":
		dumpPNG(root)
	default:
		fmt.Println("voxcat: unknown -cmd", *cmd)
		os.Exit(1)
	}
}

func inspect(root voxcore.Cube[uint8], fileSize int) {
	fmt.Printf("file size: %d bytes\n", fileSize)
	fmt.Printf("root kind: %T\n", root)
	if s, ok := root.(voxcore.Solid[uint8]); ok {
		fmt.Printf("solid value: %d\n", s.Value)
	}
}

func roundtrip(root voxcore.Cube[uint8]) {
	reencoded, err := bcf.Serialize(root)
	if err != nil {
		log.Fatal("serialize: ", err)
	}
	reparsed, err := bcf.Parse(reencoded)
	if err != nil {
		log.Fatal("reparse: ", err)
	}
	if !voxcore.Equal(root, reparsed) {
		fmt.Println("voxcat: round-trip mismatch")
		os.Exit(1)
	}
	fmt.Printf("round-trip OK, re-encoded to %d bytes\n", len(reencoded))
	if *out != "" {
		if err := os.WriteFile(*out, reencoded, 0666); err != nil {
			log.Fatal(err)
		}
	}
}

func parsePath() []int {
	var octants []int
	for i := 0; i < len(*path); i++ {
		idx, ok := voxcore.OctantCharToIndex((*path)[i])
		if !ok {
			log.Fatalf("voxcat: invalid octant letter %q at position %d", (*path)[i], i)
		}
		octants = append(octants, idx)
	}
	return octants
}

func get(root voxcore.Cube[uint8]) {
	leaf, ok := voxcore.GetAtPath(root, parsePath())
	if !ok {
		fmt.Println("voxcat: path does not resolve to a leaf")
		os.Exit(1)
	}
	s, ok := leaf.(voxcore.Solid[uint8])
	if !ok {
		fmt.Printf("voxcat: %T at path (not a Solid leaf)\n", leaf)
		return
	}
	fmt.Println(s.Value)
}

func set(root voxcore.Cube[uint8]) {
	octants := parsePath()
	depth := uint32(len(octants))
	var x, y, z int32
	for _, o := range octants {
		x, y, z = x<<1, y<<1, z<<1
		if o&1 != 0 {
			x |= 1
		}
		if o&2 != 0 {
			y |= 1
		}
		if o&4 != 0 {
			z |= 1
		}
	}
	updated := voxcore.SetVoxel(root, x, y, z, depth, uint8(*value))
	encoded, err := bcf.Serialize(updated)
	if err != nil {
		log.Fatal("serialize: ", err)
	}
	if *out == "" {
		fmt.Println("voxcat: -out file is required for -cmd=set")
		os.Exit(1)
	}
	if err := os.WriteFile(*out, encoded, 0666); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(encoded), *out)
}

// dumpPNG renders a z=0.5 cross-section of root at the given sampling
// depth to a grayscale PNG, upscaled with nearest-neighbor to pngSize.
func dumpPNG(root voxcore.Cube[uint8]) {
	if *pngPath == "" {
		fmt.Println("voxcat: -png output path is required for -cmd=png")
		os.Exit(1)
	}
	n := int32(1) << *depth
	small := image.NewGray(image.Rect(0, 0, int(n), int(n)))
	for y := int32(0); y < n; y++ {
		for x := int32(0); x < n; x++ {
			// Stop at the first non-Branch node: a Solid shallower than
			// depth covers every sample beneath it.
			leaf := root
			for _, o := range pathAt(x, y, n/2, *depth) {
				child, ok := voxcore.GetChild(leaf, o)
				if !ok {
					break
				}
				leaf = child
			}
			var v uint8
			if s, ok := leaf.(voxcore.Solid[uint8]); ok && s.Value != 0 {
				v = 255
			}
			small.SetGray(int(x), int(y), color.Gray{Y: v})
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, *pngSize, *pngSize))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Over, nil)

	fp, err := os.Create(*pngPath)
	if err != nil {
		log.Fatal(err)
	}
	defer fp.Close()
	if err := png.Encode(fp, dst); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote cross-section to %s\n", *pngPath)
}

// pathAt converts integer leaf coordinates (x,y,z) at the given depth
// into an octant-index path, outermost level first.
func pathAt(x, y, z int32, depth uint) []int {
	octants := make([]int, depth)
	for i := int(depth) - 1; i >= 0; i-- {
		shift := uint(i)
		ox, oy, oz := (x>>shift)&1, (y>>shift)&1, (z>>shift)&1
		octants[int(depth)-1-i] = int(ox | oy<<1 | oz<<2)
	}
	return octants
}
