// Package music holds the small musical vocabulary shared by score files,
// renderers and the editor: note values, pitch spelling and MIDI numbers.
//
// Durations are expressed in beats where a quarter note is one beat:
//
//	music.Quarter.Beats()        // 1
//	music.Dotted(music.Half)     // 3
//	music.FromBeats(0.4)         // music.Eighth
//
// Pitches map to MIDI note numbers with C4 = 60 and E4 = 64:
//
//	music.Pitch{Class: music.E, Octave: 4}.MIDI() // 64
//	music.PitchName(61)                           // "C#4"
package music
