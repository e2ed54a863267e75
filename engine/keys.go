package engine

// Canonical control key codes.
const (
	KeyLeft   = 37
	KeyRight  = 39
	KeyLatent = 76  // L
	KeyPause  = 80  // P
	KeyReset  = 82  // R
	KeyStats  = 121 // F10
)

// KeyMap maps alternative keys to canonical control codes.
var KeyMap = map[int]int{
	27: KeyPause,  // Esc => P
	32: KeyLatent, // Space => L
	52: KeyLeft,   // 4 => Left
	54: KeyRight,  // 6 => Right
	65: KeyLeft,   // A => Left
	68: KeyRight,  // D => Right
}

// TranslateKeyCode converts alternative key codes to canonical control codes.
func TranslateKeyCode(keyCode int) int {
	if mapped, ok := KeyMap[keyCode]; ok {
		return mapped
	}
	return keyCode
}
