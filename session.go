package folio

import (
	"fmt"
	"log"
	"slices"
)

// Session encapsulates everything one analysis run needs: the transaction
// ledger, the security registry, the price provider chain, the memo cache
// and the reporting parameters. It is the single point of access for the
// analytics; nothing here lives in package-level state, so two sessions
// with different ledgers or as-of dates coexist without interference.
type Session struct {
	Ledger            *Ledger
	Registry          *Registry
	Provider          PriceProvider
	Rates             RateSource
	Cache             *Memo
	ReportingCurrency string
	AsOf              Date
}

// NewSession creates a session over a ledger, registry and price provider.
// The as-of date defaults to today and the cache to the default TTL.
func NewSession(ledger *Ledger, reg *Registry, provider PriceProvider, reportingCurrency string) (*Session, error) {
	if ledger == nil || reg == nil || provider == nil {
		return nil, fmt.Errorf("session needs a ledger, a registry and a price provider")
	}
	return &Session{
		Ledger:            ledger,
		Registry:          reg,
		Provider:          provider,
		Cache:             NewMemo(DefaultMemoTTL),
		ReportingCurrency: reportingCurrency,
		AsOf:              Today(),
	}, nil
}

// Universe returns the ledger's instrument keys.
func (s *Session) Universe() []string { return Universe(s.Ledger) }

// Prices returns the full date × instrument price matrix for the ledger's
// universe, memoized for the cache TTL. Instruments with no price data are
// logged and skipped; they degrade gracefully rather than failing the run.
func (s *Session) Prices() (*Frame, error) {
	return Memoize(s.Cache, "prices", func() (*Frame, error) {
		frame, failed := FullHistories(s.Provider, s.Universe())
		for _, err := range failed {
			log.Printf("price history unavailable: %v", err)
		}
		return frame, nil
	})
}

// LastPrices returns the last closing price of every instrument in the
// universe, as plain floats keyed by instrument. Failing instruments are
// logged and omitted.
func (s *Session) LastPrices() (map[string]float64, error) {
	closes, err := Memoize(s.Cache, "last-closes", func() (map[string]Close, error) {
		closes, failed := LastCloses(s.Provider, s.Universe())
		for _, err := range failed {
			log.Printf("last close unavailable: %v", err)
		}
		return closes, nil
	})
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(closes))
	for inst, c := range closes {
		prices[inst] = c.Price
	}
	return prices, nil
}

// available restricts a universe to the instruments the price frame
// actually covers. Instruments whose price fetch failed were already
// logged and skipped at fetch time; a single dead instrument must degrade
// to a smaller universe, never abort a multi-instrument computation.
func available(prices *Frame, universe []string) []string {
	cols := prices.Columns()
	kept := make([]string, 0, len(universe))
	for _, inst := range universe {
		if slices.Contains(cols, inst) {
			kept = append(kept, inst)
		}
	}
	return kept
}

// Positions collapses the ledger into per-instrument positions.
func (s *Session) Positions(inPortfolioOnly bool) []Position {
	return Positions(s.Ledger, inPortfolioOnly)
}

// Wealth reconstructs the daily portfolio value from inception to the
// session's as-of date.
func (s *Session) Wealth() (*WealthHistory, error) {
	prices, err := s.Prices()
	if err != nil {
		return nil, err
	}
	return Memoize(s.Cache, "wealth:"+s.AsOf.String(), func() (*WealthHistory, error) {
		return ReconstructWealth(s.Ledger, prices, s.AsOf)
	})
}

// Returns computes period returns for the priced universe at the
// requested frequency and aggregation level.
func (s *Session) Returns(period Period, lv Level) (*Frame, error) {
	prices, err := s.Prices()
	if err != nil {
		return nil, err
	}
	return PeriodReturns(prices, s.Registry, period, lv, available(prices, s.Universe()))
}

// RollingReturns computes rolling compounded returns over a window of
// trading observations at the requested aggregation level.
func (s *Session) RollingReturns(lv Level, window int) (*Frame, error) {
	prices, err := s.Prices()
	if err != nil {
		return nil, err
	}
	return RollingReturns(prices, s.Registry, lv, available(prices, s.Universe()), window)
}

// Drawdowns computes the daily drawdown series at the requested level.
func (s *Session) Drawdowns(lv Level) (*Frame, error) {
	rets, err := s.Returns(Daily, lv)
	if err != nil {
		return nil, err
	}
	return Drawdown(rets), nil
}

// RiskContributions decomposes portfolio risk at the requested level,
// using the positions currently held.
func (s *Session) RiskContributions(lv Level) ([]RiskContribution, error) {
	prices, err := s.Prices()
	if err != nil {
		return nil, err
	}
	held := s.Positions(true)
	shares := make(map[string]float64, len(held))
	instruments := make([]string, 0, len(held))
	for _, p := range held {
		shares[p.Instrument] = p.Shares.InexactFloat64()
		instruments = append(instruments, p.Instrument)
	}
	sub, err := prices.Select(available(prices, instruments))
	if err != nil {
		return nil, err
	}
	return RelativeRiskContributions(sub, shares, s.Registry, lv)
}

// Pivot groups current portfolio value by hierarchy level.
func (s *Session) Pivot(lv Level) ([]PivotRow, error) {
	last, err := s.LastPrices()
	if err != nil {
		return nil, err
	}
	return PortfolioPivot(s.Positions(true), last, s.Registry, lv, s.ReportingCurrency)
}

// PnL breaks down unrealized profit-and-loss by class.
func (s *Session) PnL(lv Level) ([]PnLRow, error) {
	last, err := s.LastPrices()
	if err != nil {
		return nil, err
	}
	return PnLByClass(s.Positions(true), last, s.Registry, lv, s.ReportingCurrency)
}

// Sharpe computes the annualized Sharpe ratio of the portfolio's daily
// returns at the macro level, against the session's risk-free rate source.
func (s *Session) Sharpe() (float64, error) {
	rets, err := s.Returns(Daily, MacroAssetClassLevel)
	if err != nil {
		return 0, err
	}
	portfolio := portfolioReturns(rets)
	return SharpeRatio(portfolio, TradingDays, RiskFreeOrDefault(s.Rates)), nil
}

// Sortino computes the annualized Sortino ratio of the portfolio's daily
// returns at the macro level.
func (s *Session) Sortino() (float64, error) {
	rets, err := s.Returns(Daily, MacroAssetClassLevel)
	if err != nil {
		return 0, err
	}
	portfolio := portfolioReturns(rets)
	return SortinoRatio(portfolio, TradingDays, RiskFreeOrDefault(s.Rates)), nil
}

// portfolioReturns collapses a class-level return frame to a single series
// by summing the classes row by row, the same convention the class
// aggregation itself uses.
func portfolioReturns(rets *Frame) []float64 {
	groups := map[string][]string{"portfolio": rets.Columns()}
	collapsed := rets.GroupSum([]string{"portfolio"}, groups)
	return collapsed.Column("portfolio")
}
