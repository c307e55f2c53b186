package main

// Sample represents a benchmark text sample.
type Sample struct {
	Name string
	Text string
}

// Samples contains raw thoughts at varying lengths, the kind people paste
// into the analyzer. Used by default benchmark mode for latency measurement.
var Samples = []Sample{
	{
		Name: "tiny",
		Text: "I should quit my job and start a bakery.",
	},
	{
		Name: "short",
		Text: `I keep thinking that remote work makes teams slower. Nobody answers on chat, meetings get longer, and decisions take days. But my own output went up when I stopped commuting, so maybe it is just my team.`,
	},
	{
		Name: "medium",
		Text: `I have been trying to figure out why our side project never ships. Every time we get close, someone proposes a rewrite in a new framework and we lose two weeks. I think the real problem is that we never agreed on what "done" means. We have a list of features but no priority, so everything feels equally urgent.

It also does not help that we only meet on Sundays. By then half of us forgot what we decided last time. Maybe we need a short written log after each session, or maybe we just need fewer people deciding things. I am not sure if I am frustrated with the process or with the people, and that bothers me.`,
	},
	{
		Name: "long",
		Text: `Lately I have been wondering whether learning a second language as an adult is worth the effort. On one side, everyone says it keeps the brain young and opens doors at work. On the other side, I have tried three times and quit every time after a couple of months, which makes me think I am just not built for it.

The first attempt was an app. It was fun for a while, but I realised I could recognise words without being able to say a single sentence. The second time I took evening classes. Those were better because there was a tutor and other people, but the schedule clashed with my job and I started missing sessions until I stopped going. The third time I tried reading children's books, which was surprisingly enjoyable, but I never practiced speaking at all.

Looking back, every approach fixed one thing and broke another. Apps are easy but shallow. Classes are deep but rigid. Books are flexible but silent. Maybe the answer is combining them, or maybe the real issue is that I never had a concrete reason to speak the language. People who succeed usually move abroad or have a partner who speaks it. I do not have either, so perhaps I should pick a goal first, like a trip next year, and build the habit around that deadline instead of around motivation.`,
	},
}

// QualitySamples are short thoughts with a clear dominant emotion or an
// obvious gap, for eyeballing the analysis output.
var QualitySamples = []Sample{
	{
		Name: "excited",
		Text: "We finally got the grant! Six months of work and the committee loved the proposal. I cannot wait to start hiring.",
	},
	{
		Name: "anxious",
		Text: "The launch is tomorrow and I still have not tested the payment flow on mobile. If it breaks, we lose the first wave of users.",
	},
	{
		Name: "confused",
		Text: "My manager says the project is a priority but also that we should not spend time on it this quarter. I do not know which one to follow.",
	},
	{
		Name: "frustrated",
		Text: "Third time this week the build broke because someone pushed without running the tests. I am tired of fixing other people's mistakes.",
	},
	{
		Name: "logic-gap",
		Text: "Coffee is bad for you. My uncle drank it every day and he got sick. So everyone should stop drinking coffee.",
	},
	{
		Name: "neutral",
		Text: "The meeting moved from Tuesday to Wednesday. The agenda stays the same and the room is booked.",
	},
}
