package operator

// letterOperators lists the 26 letter operators, one per letter of the
// alphabet. Each is registered under both its uppercase tick symbol and an
// auto-derived lowercase bang-twin (registry.go registerLetter).
func letterOperators() []letterDescriptor {
	return []letterDescriptor{
		{'A', "Add", evalAdd},
		{'B', "Sub", evalSub},
		{'C', "Clock", evalClock},
		{'D', "Delay", evalDelay},
		{'E', "East", evalMoveEast},
		{'F', "If", evalIf},
		{'G', "Generate", evalGenerate},
		{'H', "Halt", evalHalt},
		{'I', "Increment", evalIncrement},
		{'J', "Jump", evalJump},
		{'K', "Concat", evalConcat},
		{'L', "Lesser", evalLesser},
		{'M', "Multiply", evalMultiply},
		{'N', "North", evalMoveNorth},
		{'O', "Read", evalRead},
		{'P', "Push", evalPush},
		{'Q', "Query", evalQuery},
		{'R', "Random", evalRandom},
		{'S', "South", evalMoveSouth},
		{'T', "Track", evalTrack},
		{'U', "Euclid", evalEuclid},
		{'V', "Variable", evalVariable},
		{'W', "West", evalMoveWest},
		{'X', "Write", evalWrite},
		{'Y', "Jymp", evalJymp},
		{'Z', "Interpolate", evalInterpolate},
	}
}

// specialOperators lists the non-letter symbols: comment fencing, the
// note-emitting operators, Bernoulli, Globals, and the session/snippet
// persistence operators. These are all TickKind — several of them (the
// note emitters, Bernoulli, the persistence pair) gate their side effect
// internally on isBangAdjacent rather than relying on the registry's
// bang/tick pass split, since Bernoulli in particular needs to run every
// tick with an explicit "else" branch rather than only on bang.
func specialOperators() []specialDescriptor {
	mk := func(symbol rune, name string, eval EvalFunc) specialDescriptor {
		return specialDescriptor{symbol: symbol, descriptor: &Descriptor{Name: name, Kind: TickKind, Eval: eval}}
	}
	return []specialDescriptor{
		mk('#', "Comment", evalComment),
		mk(':', "MIDI", evalMIDI),
		mk('~', "Synth", evalSynth),
		mk(';', "Scaler", evalScaler),
		mk('?', "MIDICC", evalMIDICC),
		mk('>', "Sampler", evalSampler),
		mk('^', "Bernoulli", evalBernoulli),
		mk('@', "Globals", evalGlobals),
		mk('[', "Save", evalSave),
		mk(']', "Load", evalLoad),
		mk('{', "SnipSave", evalSnipSave),
		mk('}', "SnipLoad", evalSnipLoad),
	}
}
