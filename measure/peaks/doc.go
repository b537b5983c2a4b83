// Package peaks finds local maxima in a swept Spectrum.
//
// Detection looks at three consecutive entries at a time and flags the
// middle one when it holds the largest power; ties go to the later entry,
// so the middle of [1, 2, 2] is not a peak. [Tracker] applies the window as
// a sweep grows, [Detect] applies it to a finished spectrum.
//
// [Adjust] post-processes the raw indices once the sweep is complete:
//
//  1. Plateau merge: a run of entries with bit-identical magnitude after a
//     raw peak p0 ends at p1, the first index whose magnitude differs. The
//     adjusted index is p0 + floor(p1-p0), which is p1 itself. The
//     centered form p0 + floor((p1-p0)/2) is available through
//     [WithCenteredPlateaus] and is never applied implicitly.
//  2. Significance: only peaks whose magnitude exceeds one third of the
//     strongest raw peak are kept.
//  3. Adjacent duplicates are collapsed.
package peaks
