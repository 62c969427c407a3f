package prompt

// Styles is every art style a board can be drawn in.
var Styles = []string{
	"Painterly Traditional Fantasy",
	"Comic Book Style",
	"Art Nouveau Fantasy",
	"Cel-Shaded Cartoony",
	"Dark Fantasy",
	"Retro Storybook",
	"Surreal Dreamlike",
	"Hyper-Realistic",
	"Pop Surreal",
	"Vintage Fantasy",
}

// Creatures are subjects of the creature type.
var Creatures = []string{
	// Mammals
	"fox", "deer", "bear", "rabbit", "wolf", "red panda", "squirrel", "hedgehog", "raccoon",
	"otter", "dormouse", "chipmunk", "badger", "lynx", "fawn", "arctic fox", "fennec fox",
	"flying squirrel", "pine marten", "stoat",
	// Birds
	"owl", "crow", "peacock", "dove", "eagle", "hummingbird", "sparrow", "bluejay", "cardinal",
	"chickadee", "woodpecker", "swan", "kingfisher", "barn owl", "robin", "wren", "magpie",
	"nightingale", "swallow", "finch",
	// Reptiles & Amphibians
	"dragon", "lizard", "snake", "turtle", "chameleon", "gecko", "salamander", "newt", "toad",
	"tree frog", "axolotl", "bearded dragon", "skink", "tortoise", "iguana", "garden snake",
	"grass snake", "fire-bellied newt", "spotted salamander", "leopard gecko",
	// Fish & Sea Creatures
	"koi", "angelfish", "shark", "whale", "seahorse", "goldfish", "betta fish", "clownfish",
	"starfish", "jellyfish", "octopus", "narwhal", "manta ray", "dolphin", "sea turtle",
	"lionfish", "sea dragon", "flying fish", "moorish idol", "pufferfish",
	// Insects & Arachnids
	"butterfly", "bee", "dragonfly", "firefly", "scarab", "ladybug", "moth", "praying mantis",
	"grasshopper", "cricket", "caterpillar", "spider", "ant", "cicada", "damselfly", "luna moth",
	"atlas moth", "jewel beetle", "walking stick", "leaf insect",
	// Fantastical Creatures
	"unicorn", "griffin", "dragon", "phoenix", "pegasus", "kitsune", "jackalope", "hippogriff",
	"basilisk", "chimera", "kraken", "mermaid", "centaur", "fairy", "sprite", "pixie", "selkie",
	"dragon hatchling", "baby phoenix", "tiny unicorn",
	// Mythological
	"forest spirit", "water elemental", "shadow creature", "light being", "nature guardian",
	"dryad", "nymph", "sylph", "gnome", "brownie", "leprechaun", "will-o'-wisp", "kirin",
	"tanuki", "cloud spirit", "tree spirit", "river spirit", "mountain spirit", "crystal being",
	"star creature",
}

// Items are magical objects and household things.
var Items = []string{
	// Magical Tools & Implements
	"enchanted compass", "floating lantern", "magical hourglass", "crystal orb", "singing bell",
	"wizard's staff", "enchanted brush", "crystal quill", "glowing compass", "mystic telescope",
	"divining rod", "enchanted mirror", "scrying bowl", "magic wand", "rune stones",
	"alchemy set", "spell book", "tarot deck", "crystal ball", "dowsing pendulum",
	// Clothing & Accessories
	"wizard's hat", "enchanted cloak", "magical boots", "glowing crown", "mystic amulet",
	"fairy wings", "crystal earrings", "magic ring", "enchanted bracelet", "witch's shawl",
	"magical brooch", "enchanted ribbon", "crystal tiara", "magic shoes", "witch's hat",
	"enchanted scarf", "magical gloves", "crystal necklace", "witch's belt", "magic glasses",
	// Books & Writing
	"floating spellbook", "ancient scroll", "magical map", "glowing runes", "enchanted diary",
	"witch's grimoire", "book of shadows", "magical journal", "enchanted quill",
	"living storybook", "secret recipe book", "garden journal", "herbal guide", "book of dreams",
	"crystal encyclopedia", "potion recipe book", "magical almanac", "enchanted notebook",
	"spell scroll", "fairy tale book",
	// Potions & Containers
	"rainbow potion", "starlight vial", "crystal flask", "bubble bottle", "moonlight elixir",
	"healing potion", "fairy dust jar", "magic ink bottle", "crystal decanter",
	"dream essence vial", "transformation potion", "love elixir", "wisdom brew", "luck potion",
	"sleeping draught", "truth serum", "growth elixir", "memory potion", "courage brew",
	"peace tincture",
	// Household & Garden
	"enchanted teapot", "magical watering can", "living broom", "crystal vase",
	"singing windchimes", "magic garden shears", "enchanted basket", "floating candle",
	"witch's cauldron", "magic mortar and pestle", "enchanted teacup", "magical kettle",
	"living doorknob", "crystal lamp", "witch's broom", "magic spinning wheel",
	"enchanted needle", "crystal bowl", "magical spoon", "enchanted thimble",
	// Musical & Sound
	"singing crystal", "magic music box", "enchanted flute", "fairy bells", "witch's whistle",
	"crystal chimes", "magical harp", "enchanted drum", "spirit whistle", "dream bells",
	"harmony stone", "musical locket", "singing shell", "magic ocarina", "crystal xylophone",
	"enchanted violin", "fairy pipes", "witch's rattle", "magical horn", "singing bowl",
}

// Scenery holds places, buildings and weather.
var Scenery = []string{
	// Buildings & Structures
	"cottage", "treehouse", "windmill", "lighthouse", "castle", "tower", "barn", "greenhouse",
	"cabin", "water mill", "stone bridge", "gazebo", "pavilion", "observatory", "temple",
	"fairy house", "mushroom house", "hobbit hole", "crystal tower", "floating castle",
	// Gardens & Cultivated Spaces
	"flower garden", "herb garden", "rose maze", "vegetable patch", "orchard", "tea garden",
	"zen garden", "butterfly garden", "wildflower meadow", "topiary garden", "hanging gardens",
	"secret garden", "cottage garden", "kitchen garden", "fairy garden", "moss garden",
	"rock garden", "water garden", "moonlight garden", "sunflower field",
	// Natural Formations
	"waterfall", "crystal cave", "ancient tree", "hot springs", "flowering valley",
	"misty mountains", "aurora sky", "coral reef", "tide pools", "rainbow falls", "glowworm cave",
	"stone arch", "cherry blossom grove", "bamboo forest", "redwood forest", "lavender field",
	"alpine meadow", "crystal spring", "starlit lagoon", "cloud forest",
	// Magical Places
	"fairy circle", "enchanted grove", "crystal glade", "dragon's lair", "phoenix nest",
	"unicorn sanctuary", "mermaid lagoon", "witch's garden", "wizard's study", "elven sanctuary",
	"magical library", "potion workshop", "enchanted fountain", "starlit clearing",
	"moonlit pool", "crystal sanctuary", "rainbow bridge", "dream portal", "time garden",
	"spirit shrine",
	// Cozy Spaces
	"reading nook", "tea room", "window seat", "garden bench", "covered porch", "courtyard",
	"conservatory", "art studio", "music room", "meditation space", "writing desk", "craft room",
	"library corner", "breakfast nook", "window garden", "candlelit study", "cozy attic",
	"plant-filled sunroom", "quilting room", "pottery workshop",
	// Seasonal & Weather
	"autumn forest", "winter wonderland", "spring meadow", "summer garden", "rainy street",
	"foggy morning", "snowy village", "autumn path", "spring creek", "summer twilight",
	"winter cottage", "misty dawn", "golden sunset", "starry night", "morning frost",
	"autumn leaves", "spring blossoms", "summer breeze", "winter moonlight", "rainbow after rain",
}
