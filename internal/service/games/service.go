package games

import (
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
	"github.com/zhouzirui/gamehub/backend/internal/service/session"
)

// Gateway is what the games need from the completion layer.
type Gateway interface {
	ai.Completer
	ai.Streamer
}

// Service bundles every game controller over one session store.
type Service struct {
	Quiz      *Quiz
	Character *Character
	Price     *Price
	Diet      *Diet
	Glam      *Glam
	Fortune   *FortuneTeller
}

// NewService wires all controllers to store and gateway.
func NewService(store session.Store, gateway Gateway, policies Policies) *Service {
	flow := NewFlow(store)
	return &Service{
		Quiz:      NewQuiz(flow, gateway, policies.Quiz),
		Character: NewCharacter(flow, gateway, policies.Character),
		Price:     NewPrice(flow, gateway, policies.Price),
		Diet:      NewDiet(flow, gateway, policies.Diet),
		Glam:      NewGlam(flow, gateway, policies.Glam),
		Fortune:   NewFortuneTeller(gateway, gateway),
	}
}
