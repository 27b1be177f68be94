package gameplay

import (
	"math/rand"

	"deepspire/pkg/engine/dungeon"
)

var npcNames = []string{
	"Maren", "Oskel", "Thessaly", "Bramm", "Yurik", "Ivenna", "Corvo", "Sable",
}

var npcTitles = []string{
	"the Lost Cartographer", "the Blind Merchant", "a Deserter", "the Bone Collector",
	"a Fellow Delver", "the Hermit", "an Old Rival",
}

var npcGreetings = []string{
	"The stairs lie where the walls grow cold.",
	"I traded my lantern for my life. Fair deal.",
	"Three relics wake the thing at the bottom. Pray you never find them all.",
	"Campfires never burn out down here. Nobody asks why.",
	"The chests bite back, sometimes. Count your fingers.",
	"I've been on this floor longer than I can remember.",
}

// GenerateNPC rolls a character for an npc room. The result is cached in
// the room's payload so every revisit meets the same NPC.
func GenerateNPC(rng *rand.Rand) *dungeon.NPCPayload {
	return &dungeon.NPCPayload{
		Name:     npcNames[rng.Intn(len(npcNames))],
		Title:    npcTitles[rng.Intn(len(npcTitles))],
		Greeting: npcGreetings[rng.Intn(len(npcGreetings))],
	}
}
