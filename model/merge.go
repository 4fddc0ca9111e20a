package model

// MergeManagers overlays database profiles onto the static manager list.
//
// The result holds one record per static manager, in static order. When a
// profile with the same id exists, each of its non-empty fields replaces the
// static value; empty fields keep the static value. Profiles without a static
// counterpart are appended afterwards in input order. A profile id that
// appears more than once only contributes its first occurrence.
//
// MergeManagers does not modify its inputs.
func MergeManagers(static []Manager, profiles []ManagerProfile) []Manager {
	byID := make(map[string]*ManagerProfile, len(profiles))
	for i := range profiles {
		id := profiles[i].SleeperUserID
		if _, dup := byID[id]; !dup {
			byID[id] = &profiles[i]
		}
	}

	merged := make([]Manager, 0, len(static)+len(profiles))
	inStatic := make(map[string]bool, len(static))
	for _, s := range static {
		inStatic[s.ManagerID] = true
		p, found := byID[s.ManagerID]
		if !found {
			merged = append(merged, copyManager(s))
			continue
		}
		merged = append(merged, overlayProfile(s, p))
	}

	for i := range profiles {
		p := &profiles[i]
		if inStatic[p.SleeperUserID] || byID[p.SleeperUserID] != p {
			continue
		}
		merged = append(merged, managerFromProfile(p))
	}

	return merged
}

func overlayProfile(s Manager, p *ManagerProfile) Manager {
	m := Manager{
		ManagerID:        s.ManagerID,
		RosterID:         s.RosterID,
		Name:             firstString(p.Name, s.Name),
		Location:         firstString(p.Location, s.Location),
		Bio:              firstString(p.Bio, s.Bio),
		Photo:            firstString(p.PhotoURL, s.Photo),
		FantasyStart:     firstInt(p.FantasyStartYear, s.FantasyStart),
		FavoriteTeam:     firstString(p.FavoriteTeam, s.FavoriteTeam),
		Mode:             firstString(p.Mode, s.Mode),
		Rival:            copyRival(s.Rival),
		FavoritePlayer:   firstString(p.FavoritePlayerID, s.FavoritePlayer),
		ValuePosition:    firstString(p.ValuePosition, s.ValuePosition),
		RookieOrVets:     firstString(p.RookieOrVets, s.RookieOrVets),
		Philosophy:       firstString(p.Philosophy, s.Philosophy),
		TradingScale:     firstInt(p.TradingScale, s.TradingScale),
		PreferredContact: firstString(p.PreferredContact, s.PreferredContact),
	}

	if p.RivalName != "" {
		var link, image string
		if s.Rival != nil {
			link = s.Rival.Link
			image = s.Rival.Image
		}
		m.Rival = &Rival{
			Name:  p.RivalName,
			Link:  firstString(p.RivalManagerID, link),
			Image: firstString(image, DefaultManagerPhoto),
		}
	}
	return m
}

func managerFromProfile(p *ManagerProfile) Manager {
	m := Manager{
		ManagerID:        p.SleeperUserID,
		Name:             firstString(p.Name, p.SleeperUsername),
		Location:         p.Location,
		Bio:              p.Bio,
		Photo:            firstString(p.PhotoURL, DefaultManagerPhoto),
		FantasyStart:     p.FantasyStartYear,
		FavoriteTeam:     p.FavoriteTeam,
		Mode:             p.Mode,
		FavoritePlayer:   p.FavoritePlayerID,
		ValuePosition:    p.ValuePosition,
		RookieOrVets:     p.RookieOrVets,
		Philosophy:       p.Philosophy,
		TradingScale:     p.TradingScale,
		PreferredContact: p.PreferredContact,
	}
	if p.RivalName != "" {
		m.Rival = &Rival{
			Name:  p.RivalName,
			Link:  p.RivalManagerID,
			Image: DefaultManagerPhoto,
		}
	}
	return m
}

func copyManager(s Manager) Manager {
	s.Rival = copyRival(s.Rival)
	return s
}

func copyRival(r *Rival) *Rival {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
