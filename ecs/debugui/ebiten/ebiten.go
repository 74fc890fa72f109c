// Package ebiten wraps the Dear ImGui backend for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend embeds the Ebiten-specific Dear ImGui backend so it can be
// stored as an ECS singleton and reached from systems.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}
