package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"stay_booking/internal/adapters/observability"
	"stay_booking/internal/domain"
)

// Workflow states. The pipeline is linear with error/no-match exits:
//
//	start → dates_extracted → intent_analyzed → searched →
//	availability_checked → booking_executed
//
// booking_executed, no_match, and error are terminal.
type State string

const (
	StateStart               State = "start"
	StateDatesExtracted      State = "dates_extracted"
	StateIntentAnalyzed      State = "intent_analyzed"
	StateSearched            State = "searched"
	StateAvailabilityChecked State = "availability_checked"
	StateBookingExecuted     State = "booking_executed"
	StateNoMatch             State = "no_match"
	StateError               State = "error"
)

func (s State) Terminal() bool {
	return s == StateBookingExecuted || s == StateNoMatch || s == StateError
}

type GuestInfo struct {
	Name  string
	Email string
}

func (g GuestInfo) Complete() bool { return g.Name != "" && g.Email != "" }

// Request is one workflow invocation. Guest info and a selection are only
// present on the booking path; without them the run stops after the
// availability check.
type Request struct {
	Query           string
	Guest           GuestInfo
	SelectedHotelID string    // optional; narrows the candidate choice
	SelectedRoomID  string    // optional; otherwise first free room
	Guests          int       // occupancy, default 2
	Now             time.Time // zero means time.Now
}

// snapshot is the per-stage workflow record. Stages never mutate their
// input; each produces a new value with updated fields, so a stage's view
// of the run is fixed at the moment it executes.
type snapshot struct {
	State     State
	Dates     domain.DateExtraction
	Intent    domain.Intent
	Hotels    []domain.Hotel
	Candidate *domain.Hotel
	Rooms     []domain.Room // free rooms of the candidate
	Booking   *domain.Booking
	Message   string
	Trace     []string
}

// next returns a copy advanced to state s with a trace entry appended. The
// trace is append-only and ordered; nothing ever rewrites it.
func (sn snapshot) next(s State, format string, args ...any) snapshot {
	out := sn
	out.State = s
	out.Trace = make([]string, len(sn.Trace), len(sn.Trace)+1)
	copy(out.Trace, sn.Trace)
	out.Trace = append(out.Trace, fmt.Sprintf(format, args...))
	observability.ObserveWorkflowStage(string(s))
	return out
}

// note appends a trace entry without a state change.
func (sn snapshot) note(format string, args ...any) snapshot {
	out := sn
	out.Trace = make([]string, len(sn.Trace), len(sn.Trace)+1)
	copy(out.Trace, sn.Trace)
	out.Trace = append(out.Trace, fmt.Sprintf(format, args...))
	return out
}

type Result struct {
	State   State
	Dates   domain.DateExtraction
	Hotels  []domain.Hotel
	Booking *domain.Booking
	Message string
	Trace   []string
}

// Orchestrator runs one stay request through the pipeline. Collaborator
// calls (date extraction, intent analysis) are the only blocking external
// points and run under their own timeout; everything downstream is local.
type Orchestrator struct {
	dates      domain.DateExtractor
	intents    domain.IntentClassifier
	tools      *Toolbox
	nlpTimeout time.Duration
}

func NewOrchestrator(dates domain.DateExtractor, intents domain.IntentClassifier, tools *Toolbox, nlpTimeout time.Duration) *Orchestrator {
	if nlpTimeout <= 0 {
		nlpTimeout = 10 * time.Second
	}
	return &Orchestrator{dates: dates, intents: intents, tools: tools, nlpTimeout: nlpTimeout}
}

func (o *Orchestrator) Run(ctx context.Context, req Request) Result {
	if req.Guests <= 0 {
		req.Guests = 2
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	sn := snapshot{State: StateStart, Trace: []string{"workflow started: " + req.Query}}
	observability.ObserveWorkflowStage(string(StateStart))

	sn = o.extractDates(ctx, sn, req, now)
	sn = o.analyzeIntent(ctx, sn, req)
	if !sn.State.Terminal() {
		sn = o.searchHotels(ctx, sn)
	}
	if !sn.State.Terminal() {
		sn = o.checkAvailability(ctx, sn, req)
	}
	if !sn.State.Terminal() {
		sn = o.executeBooking(ctx, sn, req)
	}

	observability.ObserveWorkflowRun(string(sn.State))
	log.Info().Str("state", string(sn.State)).Int("hotels", len(sn.Hotels)).
		Bool("booked", sn.Booking != nil).Msg("workflow finished")

	return Result{
		State:   sn.State,
		Dates:   sn.Dates,
		Hotels:  sn.Hotels,
		Booking: sn.Booking,
		Message: sn.Message,
		Trace:   sn.Trace,
	}
}

// extractDates never fails: a dead extractor degrades to the deterministic
// fallback (7 days out, 2 nights) instead of blocking the pipeline.
func (o *Orchestrator) extractDates(ctx context.Context, sn snapshot, req Request, now time.Time) snapshot {
	cctx, cancel := context.WithTimeout(ctx, o.nlpTimeout)
	defer cancel()

	ext, err := o.dates.ExtractDates(cctx, req.Query, now)
	if err != nil {
		ext = fallbackDates(req.Query, now)
		sn = sn.note("date extraction failed (%v), fallback: %s", err, ext.Stay)
	}
	out := sn.next(StateDatesExtracted, "dates: %s (confidence %s, %s)", ext.Stay, ext.Confidence, ext.Method)
	out.Dates = ext
	return out
}

func (o *Orchestrator) analyzeIntent(ctx context.Context, sn snapshot, req Request) snapshot {
	cctx, cancel := context.WithTimeout(ctx, o.nlpTimeout)
	defer cancel()

	intent, err := o.intents.Classify(cctx, req.Query)
	if err != nil {
		var ue *domain.UpstreamError
		if !errors.As(err, &ue) {
			return o.fail(sn, "intent analysis failed: %v", err)
		}
		intent = heuristicIntent(req.Query)
		sn = sn.note("intent classifier unavailable (%v), using keyword fallback", err)
	}

	out := sn.next(StateIntentAnalyzed, "intent: hotel=%t location=%q", intent.HasHotelIntent, intent.Filters.Location)
	out.Intent = intent

	if !intent.HasHotelIntent {
		msg := intent.Response
		if msg == "" {
			msg = "no hotel intent detected in request"
		}
		end := out.next(StateNoMatch, "no hotel intent, ending workflow")
		end.Message = msg
		return end
	}
	return out
}

func (o *Orchestrator) searchHotels(ctx context.Context, sn snapshot) snapshot {
	res, err := o.tools.Invoke(ctx, ToolCall{Name: ToolSearchHotels, Search: &sn.Intent.Filters})
	if err != nil {
		return o.fail(sn, "hotel search failed: %v", err)
	}

	out := sn.next(StateSearched, "search returned %d hotels", len(res.Hotels))
	out.Hotels = res.Hotels
	if len(res.Hotels) == 0 {
		end := out.next(StateNoMatch, "no hotels matched, ending workflow")
		end.Message = "no hotels matched your criteria"
		return end
	}
	return out
}

// checkAvailability inspects a single candidate: the first search hit, or
// the requested hotel when the caller pre-selected one. Known limitation,
// kept deliberately narrow.
func (o *Orchestrator) checkAvailability(ctx context.Context, sn snapshot, req Request) snapshot {
	candidate := sn.Hotels[0]
	if req.SelectedHotelID != "" {
		for _, h := range sn.Hotels {
			if h.ID == req.SelectedHotelID {
				candidate = h
				break
			}
		}
	}

	res, err := o.tools.Invoke(ctx, ToolCall{Name: ToolCheckAvailability, Availability: &AvailabilityArgs{
		HotelID: candidate.ID,
		Stay:    sn.Dates.Stay,
		Guests:  req.Guests,
	}})
	if err != nil {
		return o.fail(sn, "availability check failed for %s: %v", candidate.Name, err)
	}

	out := sn.next(StateAvailabilityChecked, "availability: %d free rooms at %s", len(res.Rooms), candidate.Name)
	out.Candidate = &candidate
	out.Rooms = res.Rooms
	return out
}

// executeBooking is gated on explicit guest details: the pipeline never
// books on the user's behalf without them.
func (o *Orchestrator) executeBooking(ctx context.Context, sn snapshot, req Request) snapshot {
	if !req.Guest.Complete() {
		end := sn.next(StateNoMatch, "no guest details, search-only run complete")
		end.Message = fmt.Sprintf("found %d hotels; provide guest name and email to book", len(sn.Hotels))
		return end
	}
	if len(sn.Rooms) == 0 {
		end := sn.next(StateNoMatch, "no free rooms at %s for %s", sn.Candidate.Name, sn.Dates.Stay)
		end.Message = fmt.Sprintf("no rooms available at %s for %s", sn.Candidate.Name, sn.Dates.Stay)
		return end
	}

	room := sn.Rooms[0]
	if req.SelectedRoomID != "" {
		found := false
		for _, r := range sn.Rooms {
			if r.ID == req.SelectedRoomID {
				room, found = r, true
				break
			}
		}
		if !found {
			end := sn.next(StateNoMatch, "selected room %s not free", req.SelectedRoomID)
			end.Message = fmt.Sprintf("room %s is not available for %s", req.SelectedRoomID, sn.Dates.Stay)
			return end
		}
	}

	res, err := o.tools.Invoke(ctx, ToolCall{Name: ToolBookHotel, Book: &CommitRequest{
		HotelID:    sn.Candidate.ID,
		RoomID:     room.ID,
		GuestName:  req.Guest.Name,
		GuestEmail: req.Guest.Email,
		Stay:       sn.Dates.Stay,
	}})
	if err != nil {
		return o.fail(sn, "booking failed: %v", err)
	}

	out := sn.next(StateBookingExecuted, "booked %s room %s, confirmation %s", sn.Candidate.Name, room.ID, res.Booking.ID)
	out.Booking = res.Booking
	out.Message = fmt.Sprintf("booking confirmed, reservation ID %s", res.Booking.ID)
	return out
}

// fail routes to the terminal error state, preserving the message verbatim
// in both the result and the trace.
func (o *Orchestrator) fail(sn snapshot, format string, args ...any) snapshot {
	msg := fmt.Sprintf(format, args...)
	out := sn.next(StateError, "%s", msg)
	out.Message = msg
	return out
}
