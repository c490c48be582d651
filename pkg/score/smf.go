package score

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	errs "github.com/matzehuels/staffline/pkg/errors"
)

// sounding is a note recovered from a MIDI file, in absolute ticks.
type sounding struct {
	start, end uint64
	key        uint8
}

type voiceKey struct {
	channel, key uint8
}

// readSMF imports note events from a Standard MIDI File. Tracks are merged
// and notes ordered by onset, then pitch. Rests are dropped: the staff only
// spaces sounding notes. The first track name found becomes the title.
func readSMF(r io.Reader) (*Score, error) {
	file, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read MIDI file")
	}

	ticks, ok := file.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupported, "MIDI files with SMPTE time codes are not supported")
	}
	resolution := float64(ticks.Resolution())
	if resolution == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "MIDI file has zero ticks per quarter note")
	}

	var (
		notes []sounding
		title string
	)
	for _, track := range file.Tracks {
		if title == "" {
			title = trackName(track)
		}
		notes = append(notes, trackNotes(track)...)
	}

	slices.SortStableFunc(notes, func(a, b sounding) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})

	s := &Score{Title: title, Notes: make([]Entry, 0, len(notes))}
	for _, n := range notes {
		s.Append(int(n.key), float64(n.end-n.start)/resolution)
	}
	return s, nil
}

// trackNotes pairs note starts with their ends. A retriggered key closes the
// previous note; keys still held at the end of the track close there.
func trackNotes(track smf.Track) []sounding {
	var (
		abs   uint64
		notes []sounding
		open  = make(map[voiceKey]uint64)
	)

	for _, ev := range track {
		abs += uint64(ev.Delta)
		msg := midi.Message(ev.Message)

		var channel, key, velocity uint8
		switch {
		case msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
			k := voiceKey{channel, key}
			if start, held := open[k]; held {
				notes = append(notes, sounding{start: start, end: abs, key: key})
			}
			open[k] = abs
		case msg.GetNoteOn(&channel, &key, &velocity), msg.GetNoteOff(&channel, &key, &velocity):
			k := voiceKey{channel, key}
			if start, held := open[k]; held {
				notes = append(notes, sounding{start: start, end: abs, key: key})
				delete(open, k)
			}
		}
	}

	for k, start := range open {
		notes = append(notes, sounding{start: start, end: abs, key: k.key})
	}
	return notes
}

// trackName returns the first non-empty track (sequence) name meta event.
func trackName(track smf.Track) string {
	for _, ev := range track {
		var name string
		if ev.Message.GetMetaTrackName(&name) {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	return ""
}
