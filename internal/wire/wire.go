// Package wire converts sequence documents to and from the JSON dialect the
// instrument-control application reads: a single root container carrying
// three synthetic area containers, with $id/$type/$ref/$values object
// identity conventions throughout.
//
// Wire identities and internal identities are separate namespaces. Export
// mints fresh wire ids from a counter scoped to the call; import discards
// wire ids and assigns fresh internal uuids.
package wire

import "strconv"

const (
	rootContainerType   = "NINA.Sequencer.Container.SequenceRootContainer, NINA.Sequencer"
	startContainerType  = "NINA.Sequencer.Container.StartAreaContainer, NINA.Sequencer"
	targetContainerType = "NINA.Sequencer.Container.TargetAreaContainer, NINA.Sequencer"
	endContainerType    = "NINA.Sequencer.Container.EndAreaContainer, NINA.Sequencer"
	sequentialContainer = "NINA.Sequencer.Container.SequentialContainer, NINA.Sequencer"
	sequentialStrategy  = "NINA.Sequencer.Container.ExecutionStrategy.SequentialStrategy, NINA.Sequencer"

	itemCollectionType      = "System.Collections.ObjectModel.ObservableCollection`1[[NINA.Sequencer.SequenceItem.ISequenceItem, NINA.Sequencer]], System.ObjectModel"
	conditionCollectionType = "System.Collections.ObjectModel.ObservableCollection`1[[NINA.Sequencer.Conditions.ISequenceCondition, NINA.Sequencer]], System.ObjectModel"
	triggerCollectionType   = "System.Collections.ObjectModel.ObservableCollection`1[[NINA.Sequencer.Trigger.ISequenceTrigger, NINA.Sequencer]], System.ObjectModel"
)

// embeddedTypeTags maps data keys whose nested objects carry their own type
// discriminator on the wire.
var embeddedTypeTags = map[string]string{
	"Binning":          "NINA.Core.Model.Equipment.BinningMode, NINA.Core",
	"Coordinates":      "NINA.Astrometry.InputCoordinates, NINA.Astrometry",
	"InputCoordinates": "NINA.Astrometry.InputCoordinates, NINA.Astrometry",
}

// idAlloc mints wire identities for one export call. It is deliberately not
// process-wide so concurrent exports cannot interleave counters.
type idAlloc struct {
	next int
}

func (a *idAlloc) id() string {
	id := strconv.Itoa(a.next)
	a.next++
	return id
}
