package dmm

//go:generate go tool go-enum --names --marshal

// Layout of the packed map source.
// ENUM(dmm, tgm)
type Format int
