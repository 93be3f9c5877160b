package caption

// fpsTable is the static set of CDP-legal frame rates, indexed by their
// one-byte CDP identifier (SMPTE 334-2 / CEA-708-E).
var fpsTable = []FpsEntry{
	{ID: 0x1F, FpsN: 24000, FpsD: 1001, MaxCCCount: 25},
	{ID: 0x2F, FpsN: 24, FpsD: 1, MaxCCCount: 25},
	{ID: 0x3F, FpsN: 25, FpsD: 1, MaxCCCount: 24},
	{ID: 0x4F, FpsN: 30000, FpsD: 1001, MaxCCCount: 20},
	{ID: 0x5F, FpsN: 30, FpsD: 1, MaxCCCount: 20},
	{ID: 0x6F, FpsN: 50, FpsD: 1, MaxCCCount: 12},
	{ID: 0x7F, FpsN: 60000, FpsD: 1001, MaxCCCount: 10},
	{ID: 0x8F, FpsN: 60, FpsD: 1, MaxCCCount: 10},
}

// fpsTolerancePerMille bounds the relative error allowed when matching a caller
// supplied (fpsN, fpsD) fraction against a table entry. 0.1% absorbs the
// NTSC 1000/1001 pulldown distinction and nothing else.
const fpsTolerancePerMille = 1 // 0.1%

// LookupFPSByID returns the table entry for a CDP frame-rate identifier
// byte, or the null entry if id is not a legal CDP rate.
func LookupFPSByID(id byte) FpsEntry {
	for _, e := range fpsTable {
		if e.ID == id {
			return e
		}
	}
	return FpsEntry{}
}

// LookupFPS returns the table entry whose rate matches fpsN/fpsD within
// tolerance, or the null entry if fpsN or fpsD is zero or no entry
// matches closely enough. An exact match is preferred over a
// within-tolerance one, so 30/1 resolves to 0x5F rather than 0x4F.
func LookupFPS(fpsN, fpsD uint32) FpsEntry {
	if fpsN == 0 || fpsD == 0 {
		return FpsEntry{}
	}
	for _, e := range fpsTable {
		if uint64(fpsN)*uint64(e.FpsD) == uint64(e.FpsN)*uint64(fpsD) {
			return e
		}
	}
	// Cross-multiply to compare fpsN/fpsD against e.FpsN/e.FpsD without
	// floating point: |fpsN*e.FpsD - e.FpsN*fpsD| / (e.FpsN*fpsD) <= tol.
	for _, e := range fpsTable {
		lhs := uint64(fpsN) * uint64(e.FpsD)
		rhs := uint64(e.FpsN) * uint64(fpsD)
		diff := lhs - rhs
		if lhs < rhs {
			diff = rhs - lhs
		}
		// diff/rhs <= tolerance/1000  <=>  diff*1000 <= rhs*tolerance
		if rhs != 0 && diff*1000 <= rhs*fpsTolerancePerMille {
			return e
		}
	}
	return FpsEntry{}
}

// ratesEquivalent reports whether a and b denote the same frame rate
// within the table's tolerance. Matching on MaxCCCount alone, not ID, is
// intentional: the table pairs each NTSC-pulldown rate with its integer
// counterpart at the same budget (0x1F/0x2F, 0x4F/0x5F, 0x7F/0x8F), and
// those pairs take the direct-passthrough path too.
func ratesEquivalent(a, b FpsEntry) bool {
	return !a.IsZero() && !b.IsZero() && a.MaxCCCount == b.MaxCCCount
}
