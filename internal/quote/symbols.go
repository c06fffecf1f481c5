package quote

import (
	"fmt"
	"strings"
)

// MissingSymbolMappingError is returned when an intent names a symbol that is
// neither side of the pool.
type MissingSymbolMappingError struct {
	Symbol string
	Known  [2]string
}

func (e *MissingSymbolMappingError) Error() string {
	return fmt.Sprintf("unknown token symbol %s; the pool trades %s and %s", e.Symbol, e.Known[0], e.Known[1])
}

// SymbolMapping resolves ticker symbols to pool sides, 0 for token0 and 1 for token1.
type SymbolMapping struct {
	symbols [2]string
}

func NewSymbolMapping(symbol0, symbol1 string) SymbolMapping {
	return SymbolMapping{symbols: [2]string{normalizeSymbol(symbol0), normalizeSymbol(symbol1)}}
}

func (symm SymbolMapping) MaybeSideFromSym(sym string) (int, bool) {
	sym = normalizeSymbol(sym)
	for side, known := range symm.symbols {
		if known == sym {
			return side, true
		}
	}
	return 0, false
}

func (symm SymbolMapping) SideFromSym(sym string) (int, error) {
	side, ok := symm.MaybeSideFromSym(sym)
	if !ok {
		return 0, &MissingSymbolMappingError{Symbol: normalizeSymbol(sym), Known: symm.symbols}
	}
	return side, nil
}

func (symm SymbolMapping) SymFrom(side int) string {
	if side < 0 || side > 1 {
		return ""
	}
	return symm.symbols[side]
}

func normalizeSymbol(raw string) string {
	sym := strings.TrimSpace(raw)
	sym = strings.Trim(sym, "\x00")
	sym = strings.ReplaceAll(sym, " ", "")
	sym = strings.ReplaceAll(sym, "\t", "")
	sym = strings.ToUpper(sym)
	return sym
}
