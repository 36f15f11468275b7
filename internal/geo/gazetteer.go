package geo

import "strings"

// gazetteer is the fixed name -> coordinates table used when a profile has
// no stored coordinates. Mostly Victorian suburbs and regional centres,
// where the bulk of the community lives.
var gazetteer = map[string]Coordinates{
	"Melbourne":        {-37.8136, 144.9631},
	"Geelong":          {-38.1479, 144.3599},
	"Torquay":          {-38.3305, 144.3256},
	"Ballarat":         {-37.5622, 143.8503},
	"Bendigo":          {-36.7570, 144.2794},
	"Ocean Grove":      {-38.2667, 144.5333},
	"Barwon Heads":     {-38.2833, 144.4833},
	"Anglesea":         {-38.4072, 144.1853},
	"Lorne":            {-38.5400, 143.9750},
	"Werribee":         {-37.9000, 144.6667},
	"Point Cook":       {-37.9144, 144.7489},
	"Hoppers Crossing": {-37.8826, 144.7003},
	"Lara":             {-38.0167, 144.4000},
	"Drysdale":         {-38.1727, 144.5720},
	"Leopold":          {-38.1892, 144.4644},
	"Belmont":          {-38.1759, 144.3424},
	"Highton":          {-38.1703, 144.3168},
	"Newtown":          {-38.1553, 144.3372},
	"Waurn Ponds":      {-38.2167, 144.3000},
	"Armstrong Creek":  {-38.2333, 144.3667},
	"Colac":            {-38.3403, 143.5847},
	"Winchelsea":       {-38.2436, 143.9858},
	"Bannockburn":      {-38.0497, 144.1694},
	"Queenscliff":      {-38.2686, 144.6617},
	"Portarlington":    {-38.1156, 144.6564},
	"Footscray":        {-37.8000, 144.9000},
	"Sunshine":         {-37.7833, 144.8333},
	"Altona":           {-37.8667, 144.8300},
	"Williamstown":     {-37.8667, 144.9000},
	"Brunswick":        {-37.7667, 144.9667},
	"Coburg":           {-37.7500, 144.9667},
	"Preston":          {-37.7417, 145.0000},
	"Ringwood":         {-37.8167, 145.2333},
	"Frankston":        {-38.1333, 145.1167},
	"Dandenong":        {-37.9833, 145.2167},
	"Mornington":       {-38.2167, 145.0333},
	"Cranbourne":       {-38.1000, 145.2833},
	"Pakenham":         {-38.0667, 145.4833},
	"Sunbury":          {-37.5811, 144.7139},
	"Castlemaine":      {-37.0667, 144.2167},
	"Daylesford":       {-37.3500, 144.1500},
	"Kyneton":          {-37.2500, 144.4500},
	"Woodend":          {-37.3500, 144.5333},
	"Warrnambool":      {-38.3833, 142.4833},
	"Apollo Bay":       {-38.7500, 143.6667},
	"Sydney":           {-33.8688, 151.2093},
	"Brisbane":         {-27.4698, 153.0251},
	"Adelaide":         {-34.9285, 138.6007},
	"Perth":            {-31.9523, 115.8613},
	"Hobart":           {-42.8821, 147.3272},
	"Canberra":         {-35.2809, 149.1300},
	"Darwin":           {-12.4634, 130.8456},
}

// Lookup resolves a free-text location name. The trimmed name is matched
// exactly (case-sensitive) first, then by bidirectional case-insensitive
// substring. A miss returns ok=false; callers must treat that as "location
// unknown", never as distance zero.
func Lookup(name string) (Coordinates, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Coordinates{}, false
	}

	if coords, ok := gazetteer[name]; ok {
		return coords, true
	}

	lower := strings.ToLower(name)
	for entry, coords := range gazetteer {
		entryLower := strings.ToLower(entry)
		if strings.Contains(entryLower, lower) || strings.Contains(lower, entryLower) {
			return coords, true
		}
	}
	return Coordinates{}, false
}
