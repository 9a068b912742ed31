// Package domain models the Korean regional festival catalog.
//
// # Data Source
//
// The catalog is a single CSV export of the national festival listing
// (conventionally "festival.CSV"). Exports come from different years and
// tools, so neither the encoding nor the column labels are stable:
//
//	State,FestivalName,FestivalType,StartMonth,Foreigner,Venue
//	서울,한강 봄 축제,문화예술,4,1200,여의도
//
// Older exports are CP949 (the Windows superset of EUC-KR); newer ones are
// UTF-8, sometimes with a byte order mark.
//
// # Column Labels
//
// Labels are compared after NFC normalization, whitespace removal and
// lower-casing, so "Start Month", "startmonth" and "StartMonth" are the same
// column. [ResolveColumns] maps labels to canonical fields. Exact synonyms win
// over substring matches, and a foreign-visitor column ("Foreigner",
// "외국인") always wins over a generic visitor column ("Visitors in the
// previous year"): only the foreign-visitor figure is canonical.
//
// # Numeric Cells
//
// Visitor counts use thousands separators ("1,234") and two textual
// sentinels:
//
//	미집계    not yet tallied
//	최초행사  first-time event, no previous-year figure
//
// Both clean to 0, as does anything unparseable. Months are 1-12; 0 means
// unknown and is kept distinct from every real month.
//
// # Regions
//
// A region's code is the first two characters of its native label
// ("강원특별자치도" → "강원"). Codes key the static coordinate and English
// name tables. Unknown codes fall back to the national centroid
// (36.5, 127.5) and the native label; lookup never fails.
//
// Display coordinates add a small uniform jitter (±[MaxJitter] degrees) to
// the regional base coordinate so festivals in one province do not stack
// on a map.
package domain
