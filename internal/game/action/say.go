package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// say matches spoken words against the content's phrases. The first phrase
// whose room, item, flag and words all match fires; unmatched speech falls
// through to the say hook and finally to a fixed line.
func say(c *Context) error {
	if c.Args == "" {
		c.Error("Say what?")
		return nil
	}
	room := c.World.CurrentRoom()
	said := world.NormalizePhrase(c.Args)

	for i, p := range c.World.Content().Phrases {
		if !p.Matches(room, said) {
			continue
		}
		if p.RequiresFlag != "" && !c.World.Flag(p.RequiresFlag) {
			continue
		}
		if p.Item != "" {
			it, ok := c.World.Item(p.Item)
			if !ok || !it.Accessible(room) {
				continue
			}
		}
		if p.Once && !c.World.ReachPhrase(i) {
			c.Flavor(orDefault(p.AgainResponse, MsgNothingHappens))
			return nil
		}
		c.Flavor(orDefault(p.Response, MsgNothingHappens))
		return c.applyEffects(p.Effects, false)
	}

	if c.d.say != nil {
		if text, ok := c.d.say.OnSay(c.ctx, c.World, said); ok {
			c.d.logger.Debug("say hook answered", zap.String("room", room), zap.String("phrase", said))
			c.Flavor(text)
			return nil
		}
	}
	c.Flavor(MsgNothingHappens)
	return nil
}
