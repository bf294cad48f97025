package loadgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// eventPool spans the conversion table so a run exercises every factor
// family.
var eventPool = []struct {
	event    string
	course   string
	baseSec  float64
	rangeSec float64
}{
	{"50_free", "SCY", 19.0, 8.0},
	{"100_free", "SCY", 42.0, 15.0},
	{"100_free", "LCM", 48.0, 18.0},
	{"200_free", "LCM", 105.0, 40.0},
	{"400_free", "LCM", 225.0, 80.0},
	{"100_back", "SCY", 45.0, 18.0},
	{"200_back", "LCM", 115.0, 40.0},
	{"100_breast", "SCY", 51.0, 20.0},
	{"200_breast", "LCM", 130.0, 45.0},
	{"100_fly", "SCY", 45.0, 18.0},
	{"200_fly", "LCM", 115.0, 40.0},
	{"200_im", "SCY", 105.0, 35.0},
	{"400_im", "LCM", 255.0, 90.0},
	{"1650_free", "SCY", 900.0, 250.0},
}

const randomDivisor = 1_000_000

// randomFloat returns a random float64 in [0, 1) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomDivisor))
	return float64(n.Int64()) / float64(randomDivisor)
}

func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// formatSeconds renders seconds in the wire time format.
func formatSeconds(sec float64) string {
	centis := int64(sec*100 + 0.5)
	minutes := centis / 6000
	rest := centis % 6000
	if minutes == 0 {
		return fmt.Sprintf("%02d.%02d", rest/100, rest%100)
	}
	return fmt.Sprintf("%d:%02d.%02d", minutes, rest/100, rest%100)
}

// Generate creates submissions across a fixed pool of swimmers. Multiple
// submissions per swimmer are expected; the board keeps only the best.
func Generate(cfg *Config, stats *Stats) []Submission {
	swimmers := make([]string, cfg.NumSwimmers)
	for i := range swimmers {
		swimmers[i] = uuid.New().String()
	}

	meetDate := time.Now().UTC().Format(time.RFC3339)
	subs := make([]Submission, cfg.NumTimes)
	for i := range subs {
		slot := eventPool[randomIndex(len(eventPool))]
		sec := slot.baseSec + randomFloat()*slot.rangeSec
		subs[i] = Submission{
			SubmissionID: uuid.New().String(),
			SwimmerID:    swimmers[randomIndex(len(swimmers))],
			Event:        slot.event,
			Course:       slot.course,
			Time:         formatSeconds(sec),
			MeetName:     "Load Test Invitational",
			MeetDate:     meetDate,
		}
	}
	stats.TimesGenerated = len(subs)
	return subs
}
