package refdata

// Topic is one disaster-preparedness subject the bot can explain.
type Topic struct {
	ID    string
	Title string
	Emoji string
}

var topics = []Topic{
	{ID: "wildfire", Title: "Wildfires", Emoji: "🔥"},
	{ID: "typhoon", Title: "Typhoons", Emoji: "🌀"},
	{ID: "flood", Title: "Floods", Emoji: "🌊"},
	{ID: "earthquake", Title: "Earthquakes", Emoji: "🌋"},
	{ID: "heatwave", Title: "Heatwaves", Emoji: "🌡️"},
	{ID: "smog", Title: "Smog", Emoji: "🌫️"},
}

var topicIndex = buildTopicIndex()

func buildTopicIndex() map[string]Topic {
	idx := make(map[string]Topic, len(topics))
	for _, t := range topics {
		idx[t.ID] = t
	}
	return idx
}

// Topics returns the preparedness topics in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// TopicByID returns the topic with the given identifier.
func TopicByID(id string) (Topic, bool) {
	t, ok := topicIndex[id]
	return t, ok
}
