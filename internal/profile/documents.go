package profile

import (
	"errors"

	"github.com/cradoe/profilegate/internal/models"
	"golang.org/x/exp/slices"
)

var (
	ErrProfileNotLoaded    = errors.New("profile has not been loaded")
	ErrUnknownSlot         = errors.New("unknown document slot")
	ErrDocumentLocked      = errors.New("document has already been uploaded and can not be replaced")
	ErrBankStatementExists = errors.New("a bank statement has already been uploaded")
	ErrSaveInProgress      = errors.New("a save is already in progress")
)

// Slot is the frontend key of a document upload control.
type Slot string

const (
	SlotGovernmentID         Slot = "governmentId"
	SlotUtilityBill          Slot = "utilityBill"
	SlotBusinessRegistration Slot = "businessRegistration"
	SlotStoreFront           Slot = "storeFront"
	SlotGoodsImages          Slot = "goodsImages"
	SlotBankStatement        Slot = "bankStatement"
)

var slotTypes = map[Slot]models.DocumentType{
	SlotGovernmentID:         models.DocumentIDDocument,
	SlotUtilityBill:          models.DocumentUtilityBill,
	SlotBusinessRegistration: models.DocumentBusinessRegistration,
	SlotStoreFront:           models.DocumentBusinessFront,
	SlotGoodsImages:          models.DocumentGoodsPictures,
	SlotBankStatement:        models.DocumentBankStatement,
}

// replaceableSlots stay open for new uploads after the first one is saved.
var replaceableSlots = []Slot{SlotStoreFront, SlotGoodsImages}

// compulsorySlots gate completion of the documents section.
var compulsorySlots = []Slot{SlotGovernmentID, SlotUtilityBill}

// Slots lists every document slot in display order.
var Slots = []Slot{
	SlotGovernmentID,
	SlotUtilityBill,
	SlotBusinessRegistration,
	SlotStoreFront,
	SlotGoodsImages,
	SlotBankStatement,
}

func ParseSlot(s string) (Slot, bool) {
	_, ok := slotTypes[Slot(s)]
	return Slot(s), ok
}

func (s Slot) DocumentType() models.DocumentType {
	return slotTypes[s]
}

func (s Slot) Replaceable() bool {
	return slices.Contains(replaceableSlots, s)
}

func (s Slot) Compulsory() bool {
	return slices.Contains(compulsorySlots, s)
}

// CountDocuments returns how many documents of the given type the snapshot holds.
func CountDocuments(p *models.Profile, docType models.DocumentType) int {
	if p == nil {
		return 0
	}

	count := 0
	for _, doc := range p.Documents {
		if doc.Type == docType {
			count++
		}
	}
	return count
}

// DocumentLocks derives the per-slot lock map. A nil snapshot returns nil.
func DocumentLocks(p *models.Profile) map[Slot]bool {
	if p == nil {
		return nil
	}

	locks := make(map[Slot]bool, len(Slots))
	for _, slot := range Slots {
		locks[slot] = !slot.Replaceable() && CountDocuments(p, slot.DocumentType()) > 0
	}
	return locks
}

// CheckUpload decides whether a new document may be uploaded into slot.
// It runs before any network call is made.
func CheckUpload(p *models.Profile, slot Slot) error {
	if _, ok := slotTypes[slot]; !ok {
		return ErrUnknownSlot
	}
	if p == nil {
		return ErrProfileNotLoaded
	}

	if slot == SlotBankStatement && CountDocuments(p, models.DocumentBankStatement) > 0 {
		return ErrBankStatementExists
	}

	if DocumentLocks(p)[slot] {
		return ErrDocumentLocked
	}

	return nil
}
