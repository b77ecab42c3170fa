package hiddesc

// Decode walks a report descriptor and returns the layout table. It is a pure
// function of the input bytes: the same descriptor always yields the same
// table.
func Decode(desc []byte) LayoutTable {
	return NewWalker().Walk(desc)
}

// globalState holds the Global items that persist across the entire
// descriptor. Collection boundaries never reset it.
type globalState struct {
	usagePage      uint16
	logicalMinimum int32
	logicalMaximum int32
	reportSize     uint32
	reportCount    uint32
	reportID       uint8
}

// usageRange is one pending Local usage annotation. Single Usage items are
// stored as a degenerate range (min == max).
type usageRange struct {
	page uint16
	min  uint16
	max  uint16
}

type pendingUsage struct {
	page uint16
	id   uint16
}

// Walker folds a descriptor item sequence into per-report field layouts. One
// Walker owns all parsing state for exactly one descriptor; create a fresh
// instance per decode and do not share instances across goroutines.
type Walker struct {
	global globalState

	// Pending Local state. The usage list survives Output, Feature,
	// Collection and End Collection items; only an Input item clears it.
	// Getting this wrong silently breaks mouse-collection detection and
	// field assignment across nested collections.
	usages     []usageRange
	pendingMin *pendingUsage

	depth             int
	inMouseCollection bool

	// Keyboard tracking feeds device classification only; it has no effect
	// on the layout table.
	inKeyboardCollection bool
	keyboardSeen         bool
	keyCodeBits          uint32

	// bitOffset is the running bit cursor. There is a single cursor, reset
	// to 0 on every Report ID item -- also when an id is revisited later in
	// the descriptor. That can discard a previously accumulated offset, but
	// it is the behavior layout tables are conformance tested against.
	bitOffset uint32

	layouts map[uint8]*ReportLayout
	trace   TraceFunc
}

// WalkerOption configures a Walker.
type WalkerOption func(w *Walker)

// WithTrace registers a callback invoked once per decoded item, before the
// item is applied to the walker state. The callback must not retain the
// item's payload slice past the call.
func WithTrace(fn TraceFunc) WalkerOption {
	return func(w *Walker) {
		w.trace = fn
	}
}

func NewWalker(opts ...WalkerOption) *Walker {
	w := &Walker{
		layouts: make(map[uint8]*ReportLayout),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type handlerKey struct {
	kind ItemKind
	tag  uint8
}

type handlerFn func(w *Walker, it Item)

var handlers = map[handlerKey]handlerFn{
	{KindGlobal, TagUsagePage}:      handleUsagePage,
	{KindGlobal, TagLogicalMinimum}: handleLogicalMinimum,
	{KindGlobal, TagLogicalMaximum}: handleLogicalMaximum,
	{KindGlobal, TagReportSize}:     handleReportSize,
	{KindGlobal, TagReportID}:       handleReportID,
	{KindGlobal, TagReportCount}:    handleReportCount,

	{KindLocal, TagUsage}:        handleUsage,
	{KindLocal, TagUsageMinimum}: handleUsageMinimum,
	{KindLocal, TagUsageMaximum}: handleUsageMaximum,

	{KindMain, TagInput}:         handleInput,
	{KindMain, TagOutput}:        handleOutput,
	{KindMain, TagFeature}:       handleFeature,
	{KindMain, TagCollection}:    handleCollection,
	{KindMain, TagEndCollection}: handleEndCollection,
}

// Walk consumes the descriptor and returns the accumulated layout table.
// A truncated item ends the walk early with everything accumulated so far;
// unknown kind/tag combinations are skipped with state unchanged.
func (w *Walker) Walk(desc []byte) LayoutTable {
	offset := 0
	for offset < len(desc) {
		it, next, ok := ReadItem(desc, offset)
		if !ok {
			break
		}
		offset = next
		w.step(it)
	}
	return w.table()
}

func (w *Walker) step(it Item) {
	if w.trace != nil {
		w.trace(newTraceEvent(it, w.global.usagePage))
	}
	if it.Kind == KindLong {
		return
	}
	if fn := handlers[handlerKey{it.Kind, it.Tag}]; fn != nil {
		fn(w, it)
	}
}

func (w *Walker) table() LayoutTable {
	table := make(LayoutTable, len(w.layouts))
	for id, layout := range w.layouts {
		table[id] = *layout
	}
	return table
}

// layoutFor lazily creates the layout entry for a report id.
func (w *Walker) layoutFor(id uint8) *ReportLayout {
	layout, ok := w.layouts[id]
	if !ok {
		layout = &ReportLayout{ReportID: id}
		w.layouts[id] = layout
	}
	return layout
}

// decodeUsagePair decodes a usage payload and substitutes the current global
// usage page when the payload carries none.
func (w *Walker) decodeUsagePair(payload []byte) (uint16, uint16) {
	page, id := DecodeUsage(payload)
	if page == 0 {
		page = w.global.usagePage
	}
	return page, id
}

func handleUsagePage(w *Walker, it Item) {
	w.global.usagePage = uint16(DecodeUint(it.Payload))
}

func handleLogicalMinimum(w *Walker, it Item) {
	w.global.logicalMinimum = DecodeInt(it.Payload)
}

func handleLogicalMaximum(w *Walker, it Item) {
	w.global.logicalMaximum = DecodeInt(it.Payload)
}

func handleReportSize(w *Walker, it Item) {
	w.global.reportSize = DecodeUint(it.Payload)
}

func handleReportCount(w *Walker, it Item) {
	w.global.reportCount = DecodeUint(it.Payload)
}

func handleReportID(w *Walker, it Item) {
	id := uint8(DecodeUint(it.Payload))
	w.global.reportID = id
	w.layoutFor(id)
	// The cursor resets unconditionally, even when revisiting an id.
	w.bitOffset = 0
}

func handleUsage(w *Walker, it Item) {
	page, id := w.decodeUsagePair(it.Payload)
	w.usages = append(w.usages, usageRange{page: page, min: id, max: id})
}

func handleUsageMinimum(w *Walker, it Item) {
	page, id := w.decodeUsagePair(it.Payload)
	w.pendingMin = &pendingUsage{page: page, id: id}
}

func handleUsageMaximum(w *Walker, it Item) {
	page, id := w.decodeUsagePair(it.Payload)
	if w.pendingMin != nil {
		// A min/max pair on mismatched pages is dropped silently, pending
		// minimum included.
		if w.pendingMin.page == page {
			w.usages = append(w.usages, usageRange{page: page, min: w.pendingMin.id, max: id})
		}
		w.pendingMin = nil
		return
	}
	w.usages = append(w.usages, usageRange{page: page, min: id, max: id})
}

func handleCollection(w *Walker, it Item) {
	w.depth++
	for _, u := range w.usages {
		if u.page == UsagePageGenericDesktop && u.min == UsageMouse {
			w.inMouseCollection = true
		}
		if u.page == UsagePageGenericDesktop && u.min == UsageKeyboard {
			w.inKeyboardCollection = true
			w.keyboardSeen = true
		}
	}
	// Locals survive; only Input clears them.
}

func handleEndCollection(w *Walker, it Item) {
	w.depth--
	if w.depth == 0 {
		w.inMouseCollection = false
		w.inKeyboardCollection = false
	}
}

func handleOutput(w *Walker, it Item) {
	// Observed but never assigned to a layout. Deliberately does not clear
	// the usage list.
}

func handleFeature(w *Walker, it Item) {
	// Same as Output: no layout effect, locals survive.
}

// handleInput assigns the pending usages to layout fields and advances the
// bit cursor. This is the only item that clears the usage list.
func handleInput(w *Walker, it Item) {
	flags := DecodeUint(it.Payload)
	isVariable := flags&0x02 != 0
	bitSize := w.global.reportSize * w.global.reportCount
	layout := w.layoutFor(w.global.reportID)

	if w.inKeyboardCollection && w.global.usagePage == UsagePageKeyboard {
		w.keyCodeBits += bitSize
	}

	// usageIndex counts variable fields only: each variable usage occupies
	// its own reportSize-wide slot, while array-style usages all share the
	// group's base offset.
	usageIndex := uint32(0)
	for _, u := range w.usages {
		fieldOffset := w.bitOffset
		if isVariable && usageIndex < w.global.reportCount {
			fieldOffset = w.bitOffset + usageIndex*w.global.reportSize
		}

		switch {
		case u.page == UsagePageButton && u.min >= 1:
			if layout.ButtonsCount == 0 {
				layout.ButtonsBitOffset = w.bitOffset
			}
			if isVariable {
				layout.ButtonsCount = maxUint32(layout.ButtonsCount, w.global.reportCount)
			} else if span := int32(u.max) - int32(u.min) + 1; span > int32(layout.ButtonsCount) {
				// Signed span: an inverted range (max < min) contributes
				// nothing instead of wrapping around.
				layout.ButtonsCount = uint32(span)
			}
		case u.page == UsagePageGenericDesktop && u.min == UsageX && u.max == UsageX:
			if isVariable {
				layout.XBitOffset = fieldOffset
				layout.XSize = w.global.reportSize
			}
		case u.page == UsagePageGenericDesktop && u.min == UsageY && u.max == UsageY:
			if isVariable {
				layout.YBitOffset = fieldOffset
				layout.YSize = w.global.reportSize
			}
		case u.page == UsagePageGenericDesktop && u.min == UsageWheel && u.max == UsageWheel:
			if isVariable {
				layout.WheelBitOffset = fieldOffset
				layout.WheelSize = w.global.reportSize
			}
		case u.page == UsagePageConsumer && u.min == UsageACPan && u.max == UsageACPan:
			if isVariable {
				layout.PanBitOffset = fieldOffset
				layout.PanSize = w.global.reportSize
			}
		}

		if isVariable {
			usageIndex++
		}
	}

	w.bitOffset += bitSize
	layout.TotalBits = w.bitOffset
	w.usages = w.usages[:0]
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
