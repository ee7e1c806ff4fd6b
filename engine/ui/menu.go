package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Choice is what the player picked on the title screen
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceOnePlayer
	ChoiceTwoPlayers
	ChoiceQuit
)

const (
	itemOnePlayer = iota
	itemTwoPlayers
	itemStage
	itemQuit
	numItems
)

const (
	buttonW = 200
	buttonH = 32
	spacing = 12
)

// TitleMenu picks the player count and the starting stage
type TitleMenu struct {
	Open     bool
	Stage    int
	MaxStage int

	cursor  int
	buttons [numItems]Button
}

// NewTitleMenu opens a menu starting at stage, out of maxStage stages
func NewTitleMenu(stage, maxStage int) *TitleMenu {
	m := &TitleMenu{Open: true, MaxStage: max(maxStage, 1)}
	m.Stage = min(max(stage, 1), m.MaxStage)
	return m
}

// Cursor returns the highlighted item
func (m *TitleMenu) Cursor() int { return m.cursor }

// Move shifts the highlight, wrapping around
func (m *TitleMenu) Move(delta int) {
	m.cursor = ((m.cursor+delta)%numItems + numItems) % numItems
}

// Adjust changes the stage when the stage item is highlighted
func (m *TitleMenu) Adjust(delta int) {
	if m.cursor != itemStage {
		return
	}
	m.Stage = ((m.Stage-1+delta)%m.MaxStage+m.MaxStage)%m.MaxStage + 1
}

// Activate returns the choice for the highlighted item. The stage item
// steps the stage forward instead.
func (m *TitleMenu) Activate() Choice {
	switch m.cursor {
	case itemOnePlayer:
		return ChoiceOnePlayer
	case itemTwoPlayers:
		return ChoiceTwoPlayers
	case itemStage:
		m.Adjust(1)
	case itemQuit:
		return ChoiceQuit
	}
	return ChoiceNone
}

func (m *TitleMenu) labels() [numItems]string {
	return [numItems]string{
		"1 PLAYER",
		"2 PLAYERS",
		fmt.Sprintf("< STAGE %2d >", m.Stage),
		"QUIT",
	}
}

// Layout places the buttons centred on a screen of w x h
func (m *TitleMenu) Layout(w, h int) {
	labels := m.labels()
	total := numItems*buttonH + (numItems-1)*spacing
	y := h/2 - total/2 + h/8
	for i := range m.buttons {
		m.buttons[i] = Button{
			X:    w/2 - buttonW/2,
			Y:    y + i*(buttonH+spacing),
			W:    buttonW,
			H:    buttonH,
			Text: labels[i],
		}
	}
}

// Click activates the button under (x, y), if any
func (m *TitleMenu) Click(x, y int) Choice {
	for i, b := range m.buttons {
		if b.Contains(x, y) {
			m.cursor = i
			return m.Activate()
		}
	}
	return ChoiceNone
}

// Update reads the keyboard and mouse for one frame
func (m *TitleMenu) Update() Choice {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		m.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		m.Move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyA):
		m.Adjust(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyD):
		m.Adjust(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return m.Activate()
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		return m.Click(ebiten.CursorPosition())
	}
	mx, my := ebiten.CursorPosition()
	for i, b := range m.buttons {
		if b.Contains(mx, my) {
			m.cursor = i
		}
	}
	return ChoiceNone
}

// Draw renders the title screen over the whole of screen
func (m *TitleMenu) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	m.Layout(w, h)
	screen.Fill(menuBG)

	block := max(min(w/60, h/40), 2)
	drawBanner(screen, "BATTLE", w/2, h/6, block)
	drawBanner(screen, "CITY", w/2, h/6+7*block, block)

	for i, b := range m.buttons {
		drawButton(screen, b, i == m.cursor)
	}
	ebitenutil.DebugPrintAt(screen, "ARROWS select  ENTER start  ESC quit", 10, h-20)
}
