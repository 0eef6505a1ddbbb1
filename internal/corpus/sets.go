package corpus

import "pictocode/internal/model"

const cropParams = "?auto=format&fit=crop&w=400&h=300&q=80"

// Thematic sub-collections. A draw may compose across several of them
// to satisfy the requested board size.
var imageSets = map[string][]model.ImageDescriptor{
	"nature": {
		{URL: "https://images.unsplash.com/photo-1506744038136-46273834b3fb", DefaultDescription: "mountains reflected in a still lake"},
		{URL: "https://images.unsplash.com/photo-1469474968028-56623f02e42e", DefaultDescription: "sun rising over a misty valley"},
		{URL: "https://images.unsplash.com/photo-1426604966848-d7adac402bff", DefaultDescription: "forest path between tall trees"},
		{URL: "https://images.unsplash.com/photo-1472214103451-9374bd1c798e", DefaultDescription: "campfire burning at dusk"},
		{URL: "https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05", DefaultDescription: "rolling green hills under fog"},
	},
	"urban": {
		{URL: "https://images.unsplash.com/photo-1449824913935-59a10b8d2000", DefaultDescription: "city skyline at night"},
		{URL: "https://images.unsplash.com/photo-1444723121867-7a241cacace9", DefaultDescription: "skyscrapers seen from below"},
		{URL: "https://images.unsplash.com/photo-1460472178825-e5240623afd5", DefaultDescription: "busy downtown intersection"},
		{URL: "https://images.unsplash.com/photo-1465447142348-e9952c393450", DefaultDescription: "old town street with cafes"},
		{URL: "https://images.unsplash.com/photo-1476224203421-9ac39bcb3327", DefaultDescription: "neon signs on a rainy street"},
	},
	"playtest": {
		{URL: "https://images.unsplash.com/photo-1506744038136-46273834b3fb", DefaultDescription: "mountains reflected in a still lake"},
		{URL: "https://images.unsplash.com/photo-1682686581498-5e85c7228119", DefaultDescription: "scuba diver underwater"},
		{URL: "https://plus.unsplash.com/premium_photo-1664304492320-8359efcaad38", DefaultDescription: "the Great Wall of China"},
		{URL: "https://images.unsplash.com/photo-1454179083322-198bb4daae41", DefaultDescription: "cows grazing in a field"},
		{URL: "https://images.unsplash.com/photo-1472214103451-9374bd1c798e", DefaultDescription: "firepit burning at dusk"},
		{URL: "https://plus.unsplash.com/premium_photo-1668146927669-f2edf6e86f6f", DefaultDescription: "sushi rolls on a plate"},
		{URL: "https://plus.unsplash.com/premium_photo-1697729441569-f706fdd1f71c", DefaultDescription: "the Taj Mahal"},
		{URL: "https://images.unsplash.com/photo-1722028848725-9b9a95518c8f", DefaultDescription: "the Statue of Liberty"},
		{URL: "https://plus.unsplash.com/premium_photo-1673266633864-4cfdcf42eb9c", DefaultDescription: "the Golden Gate Bridge"},
		{URL: "https://plus.unsplash.com/premium_photo-1661922380380-e214c7130cad", DefaultDescription: "yellow taxi crossing the Brooklyn Bridge"},
		{URL: "https://images.unsplash.com/photo-1551415923-a2297c7fda79", DefaultDescription: "chinstrap penguins in Antarctica"},
		{URL: "https://images.unsplash.com/photo-1579463870606-64fcb6423feb", DefaultDescription: "the Bean sculpture in Chicago"},
		{URL: "https://images.unsplash.com/photo-1669655139688-72e3cd7a8d9c", DefaultDescription: "beans on toast"},
		{URL: "https://plus.unsplash.com/premium_photo-1730833407702-253d157ffd7a", DefaultDescription: "pouring three cups of tea"},
		{URL: "https://images.unsplash.com/photo-1601055653962-b77991d1c2b5", DefaultDescription: "sea lions resting on a pier"},
	},
	"landmarks": {
		{URL: "https://images.unsplash.com/photo-1722028848725-9b9a95518c8f", DefaultDescription: "the Statue of Liberty"},
		{URL: "https://images.unsplash.com/photo-1579463870606-64fcb6423feb", DefaultDescription: "the Bean sculpture in Chicago"},
		{URL: "https://plus.unsplash.com/premium_photo-1697729441569-f706fdd1f71c", DefaultDescription: "the Taj Mahal"},
		{URL: "https://images.unsplash.com/photo-1716220902614-cbe6d1d9af09", DefaultDescription: "Tokyo Tower lit up at night"},
		{URL: "https://images.unsplash.com/photo-1723946373346-555e307602c3", DefaultDescription: "inside the Colosseum in Rome"},
		{URL: "https://images.unsplash.com/photo-1707621724113-2d05615e50ef", DefaultDescription: "Christ the Redeemer statue"},
		{URL: "https://plus.unsplash.com/premium_photo-1664304492320-8359efcaad38", DefaultDescription: "the Great Wall of China"},
		{URL: "https://images.unsplash.com/photo-1535399475061-ad1dca038c26", DefaultDescription: "the Louvre pyramid in Paris"},
		{URL: "https://plus.unsplash.com/premium_photo-1673266633864-4cfdcf42eb9c", DefaultDescription: "the Golden Gate Bridge"},
	},
}
