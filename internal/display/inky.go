package display

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/inky"
	"periph.io/x/host/v3"
)

// Pins used by the Inky wHAT HAT on a Raspberry Pi header.
const (
	inkySPI   = "SPI0.0"
	inkyDC    = "GPIO22"
	inkyReset = "GPIO27"
	inkyBusy  = "GPIO17"
)

// Inky drives a Pimoroni Inky wHAT e-paper panel.
type Inky struct {
	port    spi.PortCloser
	dev     *inky.Dev
	palette Palette
}

// OpenInky initialises the host drivers and opens the panel.
func OpenInky(accent Colour) (*Inky, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("display: host init: %w", err)
	}

	port, err := spireg.Open(inkySPI)
	if err != nil {
		return nil, fmt.Errorf("display: opening %s: %w", inkySPI, err)
	}

	dc := gpioreg.ByName(inkyDC)
	reset := gpioreg.ByName(inkyReset)
	busy := gpioreg.ByName(inkyBusy)
	if dc == nil || reset == nil || busy == nil {
		port.Close()
		return nil, fmt.Errorf("display: GPIO pins %s/%s/%s not available", inkyDC, inkyReset, inkyBusy)
	}

	dev, err := inky.New(port, dc, reset, busy, &inky.Opts{
		Model:       inky.WHAT,
		ModelColor:  accent.inkyColor(),
		BorderColor: inky.Black,
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("display: opening inky: %w", err)
	}

	return &Inky{
		port:    port,
		dev:     dev,
		palette: NewPalette(accent),
	}, nil
}

func (d *Inky) Bounds() image.Rectangle { return d.dev.Bounds() }
func (d *Inky) Palette() Palette { return d.palette }

// Render pushes img to the panel and waits for the refresh.
func (d *Inky) Render(img *image.Paletted) error {
	if err := checkFrame(d, img); err != nil {
		return err
	}
	return d.dev.Draw(d.dev.Bounds(), img, image.Point{})
}

// Close halts the panel and releases the SPI port.
func (d *Inky) Close() error {
	if err := d.dev.Halt(); err != nil {
		d.port.Close()
		return err
	}
	return d.port.Close()
}

func (c Colour) inkyColor() inky.Color {
	switch c {
	case Red:
		return inky.Red
	case Yellow:
		return inky.Yellow
	default:
		return inky.Black
	}
}
