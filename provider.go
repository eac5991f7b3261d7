package folio

import (
	"errors"
	"fmt"
)

// Close is a last-closing-price snapshot.
type Close struct {
	Date  Date
	Price float64
}

// PriceProvider maps an instrument key to its daily closing-price data. It
// is consumed, never implemented, by the analytics: implementations wrap a
// market-data vendor, a file, or plain memory. A failing instrument fails
// alone; providers never report a global error for a single bad key.
type PriceProvider interface {
	// LastClose returns the most recent closing price.
	LastClose(instrument string) (Close, error)
	// FullHistory returns the instrument's full daily closing-price history.
	FullHistory(instrument string) (*Series, error)
}

// Fallback chains providers in order: each call tries the next provider
// when the previous one fails, and surfaces a per-instrument
// DataUnavailableError only after the whole chain is exhausted.
type Fallback []PriceProvider

func (f Fallback) LastClose(instrument string) (Close, error) {
	var errs error
	for _, p := range f {
		c, err := p.LastClose(instrument)
		if err == nil {
			return c, nil
		}
		errs = errors.Join(errs, err)
	}
	return Close{}, &DataUnavailableError{Instrument: instrument, Err: errs}
}

func (f Fallback) FullHistory(instrument string) (*Series, error) {
	var errs error
	for _, p := range f {
		s, err := p.FullHistory(instrument)
		if err == nil {
			return s, nil
		}
		errs = errors.Join(errs, err)
	}
	return nil, &DataUnavailableError{Instrument: instrument, Err: errs}
}

// MemoryProvider serves price series held in memory, keyed by instrument.
// It backs tests and workbook-bundled price data.
type MemoryProvider map[string]*Series

func (m MemoryProvider) LastClose(instrument string) (Close, error) {
	s, ok := m[instrument]
	if !ok || s.Len() == 0 {
		return Close{}, &DataUnavailableError{Instrument: instrument, Err: fmt.Errorf("no price series")}
	}
	on, price := s.Latest()
	return Close{Date: on, Price: price}, nil
}

func (m MemoryProvider) FullHistory(instrument string) (*Series, error) {
	s, ok := m[instrument]
	if !ok || s.Len() == 0 {
		return nil, &DataUnavailableError{Instrument: instrument, Err: fmt.Errorf("no price series")}
	}
	return s, nil
}

// FullHistories assembles the date × instrument price matrix for a
// universe. Instruments whose fetch fails after all fallbacks are skipped
// and reported in the second return value, one labeled error per
// instrument; a single failure never aborts the whole fetch.
func FullHistories(p PriceProvider, instruments []string) (*Frame, []error) {
	series := make(map[string]*Series, len(instruments))
	var cols []string
	var failed []error
	for _, inst := range instruments {
		s, err := p.FullHistory(inst)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		series[inst] = s
		cols = append(cols, inst)
	}
	return NewFrameFromSeries(cols, series), failed
}

// LastCloses fetches the last closing price of each instrument, skipping
// and reporting per-instrument failures.
func LastCloses(p PriceProvider, instruments []string) (map[string]Close, []error) {
	closes := make(map[string]Close, len(instruments))
	var failed []error
	for _, inst := range instruments {
		c, err := p.LastClose(inst)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		closes[inst] = c
	}
	return closes, failed
}

// CommonHistory returns the price matrix restricted to the maximal window
// where every requested instrument has data: from the latest first-valid
// date to the earliest last-valid date. Because the window is defined over
// the whole universe, a fetch failure here is a failure of the request,
// not of one instrument.
func CommonHistory(p PriceProvider, instruments []string) (*Frame, error) {
	frame, failed := FullHistories(p, instruments)
	if len(failed) > 0 {
		return nil, errors.Join(failed...)
	}
	return frame.CommonWindow()
}
