package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all the tuning values of the game.
// It is encoded as YAML, see DefaultConfig for the values used when no file is given.
type Config struct {
	Deck     DeckConfig     `yaml:"deck"`
	Growth   GrowthConfig   `yaml:"growth"`
	Board    BoardConfig    `yaml:"board"`
	Motion   MotionConfig   `yaml:"motion"`
	PowerUps PowerUpsConfig `yaml:"powerups"`
	Pacing   PacingConfig   `yaml:"pacing"`
}

// DeckConfig configures the cards dealt on each level.
type DeckConfig struct {
	// ColorBank lists the card colors, in the order they are introduced by the levels.
	ColorBank []string `yaml:"color_bank"`
	// BaseColorCount is the number of colors on level 0: level N uses BaseColorCount+N colors.
	BaseColorCount int `yaml:"base_color_count"`
	// FoundMatchWait is how long two mismatched cards stay face-up.
	FoundMatchWait time.Duration `yaml:"found_match_wait"`
}

// GrowthConfig configures the spreading matrix.
type GrowthConfig struct {
	CellSize       int           `yaml:"cell_size"`       // Pixels per grid cell.
	MinInterval    time.Duration `yaml:"min_interval"`    // Also the tick granularity.
	MaxInterval    time.Duration `yaml:"max_interval"`    // Interval at the start of a level.
	Multiplier     float64       `yaml:"multiplier"`      // Applied to the interval on every card flip.
	MultiplierCap  float64       `yaml:"multiplier_cap"`  // Upper bound when underclocking.
	UnderclockStep float64       `yaml:"underclock_step"` // Added to the multiplier by Underclock.
	UnwindStagger  time.Duration `yaml:"unwind_stagger"`  // Delay between cell removals.
	Colors         []string      `yaml:"colors"`          // Cells alternate between these colors.
}

// BoardConfig is the size of the play area, in pixels.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CardSize int `yaml:"card_size"`
}

// MotionConfig configures the floating cards.
type MotionConfig struct {
	Tick      time.Duration `yaml:"tick"`
	Gravity   float64       `yaml:"gravity"`
	MoveSpeed float64       `yaml:"move_speed"`
}

// PowerUpsConfig configures the power-up effects.
type PowerUpsConfig struct {
	// ConsumeOnUse makes a power-up cost one use. When false the count held during
	// the effect is given back untouched once the effect completes.
	ConsumeOnUse    bool          `yaml:"consume_on_use"`
	MemoryWipeBonus time.Duration `yaml:"memory_wipe_bonus"`
	MemoryWipeText  time.Duration `yaml:"memory_wipe_text"`
	UnderclockText  time.Duration `yaml:"underclock_text"`
	CodeLeakText    time.Duration `yaml:"code_leak_text"`
	CodeLeakReveal  time.Duration `yaml:"code_leak_reveal"`
	CodeLeakStagger time.Duration `yaml:"code_leak_stagger"`
}

// PacingConfig holds the delays of the level lifecycle.
type PacingConfig struct {
	BeginBanner  time.Duration `yaml:"begin_banner"`
	VictoryDelay time.Duration `yaml:"victory_delay"`
	DefeatDelay  time.Duration `yaml:"defeat_delay"`
	AwardBanner  time.Duration `yaml:"award_banner"`
	AwardDetails time.Duration `yaml:"award_details"`
}

// DefaultConfig returns the tuning the game was designed with.
func DefaultConfig() *Config {
	return &Config{
		Deck: DeckConfig{
			ColorBank: []string{"red", "blue", "green", "orange", "purple", "pink", "yellow",
				"brown", "black", "navy", "teal", "maroon", "silver", "white"},
			BaseColorCount: 3,
			FoundMatchWait: time.Second,
		},
		Growth: GrowthConfig{
			CellSize:       10,
			MinInterval:    20 * time.Millisecond,
			MaxInterval:    15 * time.Second,
			Multiplier:     0.8,
			MultiplierCap:  0.99,
			UnderclockStep: 0.05,
			UnwindStagger:  2 * time.Millisecond,
			Colors:         []string{"green", "black"},
		},
		Board: BoardConfig{
			Width:    1280,
			Height:   800,
			CardSize: 80,
		},
		Motion: MotionConfig{
			Tick:      25 * time.Millisecond,
			Gravity:   0.7,
			MoveSpeed: 0.5,
		},
		PowerUps: PowerUpsConfig{
			MemoryWipeBonus: time.Second,
			MemoryWipeText:  3 * time.Second,
			UnderclockText:  2 * time.Second,
			CodeLeakText:    2 * time.Second,
			CodeLeakReveal:  3 * time.Second,
			CodeLeakStagger: 100 * time.Millisecond,
		},
		Pacing: PacingConfig{
			BeginBanner:  2 * time.Second,
			VictoryDelay: 1500 * time.Millisecond,
			DefeatDelay:  500 * time.Millisecond,
			AwardBanner:  4 * time.Second,
			AwardDetails: 5 * time.Second,
		},
	}
}

// MaxLevel is the last level: one color of the bank is always kept in reserve.
func (c *Config) MaxLevel() int {
	return len(c.Deck.ColorBank) - c.Deck.BaseColorCount - 1
}

// ClampInterval bounds d to [MinInterval, MaxInterval].
func (c *Config) ClampInterval(d time.Duration) time.Duration {
	return min(max(d, c.Growth.MinInterval), c.Growth.MaxInterval)
}

// GridSize returns the number of columns and rows of the matrix grid.
func (c *Config) GridSize() (cols, rows int) {
	return c.Board.Width / c.Growth.CellSize, c.Board.Height / c.Growth.CellSize
}

// ParseConfig decodes a YAML config. Missing fields keep their default values.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config YAML: %w", ErrConfiguration, err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML config file.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filePath, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func validateConfig(cfg *Config) error {
	deck := cfg.Deck
	if deck.BaseColorCount < 1 {
		return configErrorf("deck.base_color_count must be >= 1, got %d", deck.BaseColorCount)
	}
	if len(deck.ColorBank) < deck.BaseColorCount+2 {
		return configErrorf("deck.color_bank needs at least %d colors, got %d",
			deck.BaseColorCount+2, len(deck.ColorBank))
	}
	seen := make(map[string]bool, len(deck.ColorBank))
	for _, color := range deck.ColorBank {
		if color == "" {
			return configErrorf("deck.color_bank cannot contain empty colors")
		}
		if seen[color] {
			return configErrorf("deck.color_bank has duplicate color %q", color)
		}
		seen[color] = true
	}
	if deck.FoundMatchWait < 0 {
		return configErrorf("deck.found_match_wait must be >= 0, got %s", deck.FoundMatchWait)
	}

	growth := cfg.Growth
	if growth.CellSize <= 0 {
		return configErrorf("growth.cell_size must be > 0, got %d", growth.CellSize)
	}
	if growth.MinInterval <= 0 || growth.MaxInterval < growth.MinInterval {
		return configErrorf("growth intervals must satisfy 0 < min_interval <= max_interval, got [%s, %s]",
			growth.MinInterval, growth.MaxInterval)
	}
	if growth.Multiplier <= 0 || growth.Multiplier >= 1 {
		return configErrorf("growth.multiplier must be in (0, 1), got %g", growth.Multiplier)
	}
	if growth.MultiplierCap < growth.Multiplier || growth.MultiplierCap >= 1 {
		return configErrorf("growth.multiplier_cap must be in [multiplier, 1), got %g", growth.MultiplierCap)
	}
	if growth.UnderclockStep < 0 {
		return configErrorf("growth.underclock_step must be >= 0, got %g", growth.UnderclockStep)
	}
	if len(growth.Colors) == 0 {
		return configErrorf("growth.colors cannot be empty")
	}

	board := cfg.Board
	if board.Width < 3*growth.CellSize || board.Height < 3*growth.CellSize {
		return configErrorf("board must be at least 3x3 cells, got %dx%d pixels with cell_size %d",
			board.Width, board.Height, growth.CellSize)
	}
	if board.CardSize <= 0 || board.CardSize > board.Width || board.CardSize > board.Height {
		return configErrorf("board.card_size must fit the board, got %d", board.CardSize)
	}

	if cfg.Motion.Tick <= 0 {
		return configErrorf("motion.tick must be > 0, got %s", cfg.Motion.Tick)
	}
	return nil
}
