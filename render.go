package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/levels"
	"github.com/hollowroot/relay/signal"
)

// renderer draws a session as flat colored tiles. Per-layer tile images are
// rebuilt whenever the session's level changes.
type renderer struct {
	level     *levels.Level
	layerImgs []*ebiten.Image

	playerImg *ebiten.Image
	crateImg  *ebiten.Image
	exitImg   *ebiten.Image

	senderImgs   map[signal.Kind][2]*ebiten.Image
	receiverImgs map[string][2]*ebiten.Image
}

func newRenderer() *renderer {
	r := &renderer{
		playerImg:    fillImage(common.TileSize-8, common.TileSize-4, color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}),
		crateImg:     fillImage(common.TileSize-8, common.TileSize-8, color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff}),
		exitImg:      fillImage(common.TileSize, common.TileSize, color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0x60}),
		senderImgs:   make(map[signal.Kind][2]*ebiten.Image),
		receiverImgs: make(map[string][2]*ebiten.Image),
	}

	senderColors := map[signal.Kind]color.RGBA{
		signal.KindLever:         {R: 0xc0, G: 0x60, B: 0x20, A: 0xff},
		signal.KindComputerT1:    {R: 0x20, G: 0x80, B: 0xc0, A: 0xff},
		signal.KindComputerT2:    {R: 0x20, G: 0x50, B: 0xc0, A: 0xff},
		signal.KindTrigger:       {R: 0xa0, G: 0x20, B: 0xa0, A: 0xff},
		signal.KindPressurePlate: {R: 0x70, G: 0x70, B: 0x70, A: 0xff},
		signal.KindScanner:       {R: 0x20, G: 0xa0, B: 0x60, A: 0xff},
	}
	for kind, c := range senderColors {
		r.senderImgs[kind] = [2]*ebiten.Image{
			fillImage(common.TileSize-12, common.TileSize-12, dim(c)),
			fillImage(common.TileSize-12, common.TileSize-12, c),
		}
	}

	receiverColors := map[string]color.RGBA{
		"door": {R: 0xb0, G: 0x30, B: 0x30, A: 0xff},
		"gate": {R: 0xb0, G: 0x90, B: 0x30, A: 0xff},
	}
	for kind, c := range receiverColors {
		// closed receivers fill the tile; open ones fade to a sill
		r.receiverImgs[kind] = [2]*ebiten.Image{
			fillImage(common.TileSize, common.TileSize, c),
			fillImage(common.TileSize, common.TileSize/4, dim(c)),
		}
	}
	return r
}

func (r *renderer) Draw(screen *ebiten.Image, s *Session) {
	screen.Fill(color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff})
	if s == nil {
		return
	}
	if r.level != s.level {
		r.rebuildLayers(s.level)
	}

	r.drawTiles(screen, s.level)
	r.drawExit(screen, s)
	r.drawReceivers(screen, s)
	r.drawSenders(screen, s)
	r.drawCrates(screen, s)
	r.drawPlayer(screen, s)
}

func (r *renderer) rebuildLayers(lvl *levels.Level) {
	r.level = lvl
	r.layerImgs = make([]*ebiten.Image, len(lvl.Layers))
	for i := range lvl.Layers {
		hex := "#3c5068"
		if i < len(lvl.LayerMeta) && lvl.LayerMeta[i].Color != "" {
			hex = lvl.LayerMeta[i].Color
		}
		r.layerImgs[i] = fillImage(common.TileSize, common.TileSize, parseHexColor(hex))
	}
}

func (r *renderer) drawTiles(screen *ebiten.Image, lvl *levels.Level) {
	for li, layer := range lvl.Layers {
		img := r.layerImgs[li]
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				if layer[y*lvl.Width+x] == 0 {
					continue
				}
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(x*common.TileSize), float64(y*common.TileSize))
				screen.DrawImage(img, op)
			}
		}
	}
}

func (r *renderer) drawExit(screen *ebiten.Image, s *Session) {
	if !s.cfg.HasExit {
		return
	}
	x, y := s.cfg.ExitLocation.WorldXY()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(r.exitImg, op)
}

func (r *renderer) drawSenders(screen *ebiten.Image, s *Session) {
	for _, snd := range s.graph.Arena.Senders() {
		imgs, ok := r.senderImgs[snd.Kind()]
		if !ok {
			continue
		}
		img := imgs[0]
		if snd.Active() {
			img = imgs[1]
		}
		x, y := snd.Pos().WorldXY()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x+6, y+6)
		screen.DrawImage(img, op)
	}
}

func (r *renderer) drawReceivers(screen *ebiten.Image, s *Session) {
	for _, rcv := range s.graph.Receivers {
		imgs, ok := r.receiverImgs[rcv.Kind()]
		if !ok {
			continue
		}
		x, y := rcv.Pos().WorldXY()
		op := &ebiten.DrawImageOptions{}
		if rcv.Active() {
			// open: sill at the bottom of the tile
			op.GeoM.Translate(x, y+float64(common.TileSize-common.TileSize/4))
			screen.DrawImage(imgs[1], op)
		} else {
			op.GeoM.Translate(x, y)
			screen.DrawImage(imgs[0], op)
		}
	}
}

func (r *renderer) drawCrates(screen *ebiten.Image, s *Session) {
	w, h := r.crateImg.Bounds().Dx(), r.crateImg.Bounds().Dy()
	for _, c := range s.world.Crates() {
		x, y := c.Pos()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x-float64(w)/2, y-float64(h)/2)
		screen.DrawImage(r.crateImg, op)
	}
}

func (r *renderer) drawPlayer(screen *ebiten.Image, s *Session) {
	x, y := s.player.Pos()
	w, h := r.playerImg.Bounds().Dx(), r.playerImg.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x-float64(w)/2, y-float64(h)/2)
	screen.DrawImage(r.playerImg, op)
}

func fillImage(w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

func dim(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: c.A}
}

// parseHexColor parses a color in the form #rrggbb. Returns a slate blue if
// the parse fails.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0x3c, 0x50, 0x68
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r = uint8(ri)
			g = uint8(gi)
			b = uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
