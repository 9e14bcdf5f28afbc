package combat

import "math"

// Mitigate applies the diminishing-returns defense curve:
// damage = attack × 100 / (100 + max(0, defense × (1 − penetration/100))).
func Mitigate(attack, defense, penetration float64) float64 {
	effDef := math.Max(0, defense*(1-penetration/100))
	return attack * 100 / (100 + effDef)
}

// CritMultiplier returns the damage multiplier of a critical hit.
func CritMultiplier(critDamage float64) float64 {
	return 1 + critDamage/100
}

// percentOf returns round(v × pct / 100).
func percentOf(v int64, pct float64) int64 {
	return int64(math.Round(float64(v) * pct / 100))
}

// strike resolves one attacker → defender hit.
//
// Step order:
//  1. evasion roll
//  2. immunity (first landed hit is nullified)
//  3. base damage through Mitigate
//  4. crit: guaranteed-crit or a roll against crit rate
//  5. (double attack is driven by takeTurn)
//  6. reflect back onto the attacker if the defender survives;
//     an attacker killed by reflect ends the strike here
//  7. lifesteal
//  8. stun
func (b *battle) strike(att, def *fighter, hit int) Event {
	ev := Event{
		Round:    b.round,
		Kind:     EventStrike,
		Attacker: att.side,
		Defender: def.side,
		Hit:      hit,
	}

	if b.src.Float64() < def.evasion/100 {
		ev.Evaded = true
		return b.snapshot(ev, att, def)
	}

	if def.ready(flagImmunity) {
		def.consume(flagImmunity)
		ev.Immune = true
		ev.Triggers |= TriggerImmunity
		return b.snapshot(ev, att, def)
	}

	dmg := Mitigate(att.attack, def.defense, att.penetration)

	if att.ready(flagGuaranteedCrit) {
		att.consume(flagGuaranteedCrit)
		ev.Crit = true
		ev.Triggers |= TriggerGuaranteedCrit
	} else if b.src.Float64() < att.critRate/100 {
		ev.Crit = true
	}
	if ev.Crit {
		dmg *= CritMultiplier(att.critDamage)
	}

	dealt := int64(math.Round(dmg))
	def.damage(dealt)
	ev.Damage = dealt

	if def.alive() && def.reflect > 0 && dealt > 0 {
		r := percentOf(dealt, def.reflect)
		if r > 0 {
			att.damage(r)
			ev.Reflected = r
			ev.Triggers |= TriggerReflect
		}
		if !att.alive() {
			return b.snapshot(ev, att, def)
		}
	}

	if att.lifesteal > 0 && dealt > 0 {
		if healed := att.heal(percentOf(dealt, att.lifesteal)); healed > 0 {
			ev.Lifestolen = healed
			ev.Triggers |= TriggerLifesteal
		}
	}

	if def.alive() && att.ready(flagStun) {
		att.consume(flagStun)
		def.stun()
		ev.Triggers |= TriggerStun
	}

	return b.snapshot(ev, att, def)
}

// firstStrikeHit deals the flat pre-battle hit. It bypasses evasion,
// immunity and defense.
func (b *battle) firstStrikeHit(att, def *fighter) Event {
	att.consume(flagFirstStrike)
	dmg := int64(math.Round(att.firstStrike))
	def.damage(dmg)

	ev := Event{
		Round:    0,
		Kind:     EventFirstStrike,
		Attacker: att.side,
		Defender: def.side,
		Damage:   dmg,
		Triggers: TriggerFirstStrike,
	}
	return b.snapshot(ev, att, def)
}

func (b *battle) snapshot(ev Event, att, def *fighter) Event {
	ev.AttackerHP = att.hp
	ev.DefenderHP = def.hp
	return ev
}
