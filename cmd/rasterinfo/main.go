// Inspection tool for raster block stores
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/geocodex/go-raster/blockstore"
	"github.com/geocodex/go-raster/raster"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rasterinfo <store.db> [-stats]")
		os.Exit(1)
	}

	path := os.Args[1]
	stats := len(os.Args) > 2 && os.Args[2] == "-stats"

	store, err := blockstore.Open(path)
	if err != nil {
		fmt.Printf("ERROR: Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ds := store.Dataset()
	w, h := ds.Size()
	fmt.Printf("=== %s ===\n\n", path)
	fmt.Printf("Identifier: %s\n", ds.Description())
	fmt.Printf("Size:       %d x %d\n", w, h)
	fmt.Printf("Bands:      %d\n\n", ds.BandCount())

	for bn := 1; bn <= ds.BandCount(); bn++ {
		band, err := ds.Band(bn)
		if err != nil {
			fmt.Printf("ERROR: band %d: %v\n", bn, err)
			os.Exit(1)
		}
		printBand(bn, band, stats)
	}
}

func printBand(bn int, band raster.Band, stats bool) {
	bw, bh := band.BlockSize()
	nx, ny := band.BlockCount()
	fmt.Printf("Band %d:\n", bn)
	fmt.Printf("  Type:   %s\n", band.DataType())
	fmt.Printf("  Blocks: %dx%d pixels, %dx%d grid\n", bw, bh, nx, ny)
	if !stats {
		return
	}

	w, h := band.Size()
	data, err := band.ReadFloat64(0, 0, w, h)
	if err != nil {
		fmt.Printf("  ERROR reading pixels: %v\n", err)
		return
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	fmt.Printf("  Min:    %g\n", lo)
	fmt.Printf("  Max:    %g\n", hi)
	fmt.Printf("  Mean:   %g\n", sum/float64(len(data)))
}
