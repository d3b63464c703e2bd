package model

// Output names written for every run
const (
	OutputTagCreated   = "tagcreated"
	OutputVersion      = "version"
	OutputTagRequested = "tagrequested"
	OutputPrerelease   = "prerelease"
	OutputBuild        = "build"
	OutputTagName      = "tagname"
	OutputTagSHA       = "tagsha"
	OutputTagURI       = "taguri"
	OutputTagMessage   = "tagmessage"
	OutputTagRef       = "tagref"
	OutputTag          = "tag"
)

// Outputs holds the named results of a run. The zero value is the failure
// default: every string empty and every flag "no".
type Outputs struct {
	TagCreated   bool
	Version      string
	TagRequested string
	Prerelease   bool
	Build        bool
	TagName      string
	TagSHA       string
	TagURI       string
	TagMessage   string
	TagRef       string
	Tag          string // JSON encoded PublishedTag
}

// Output is a single name/value pair
type Output struct {
	Name  string
	Value string
}

// ClearTag resets every tag identifying output and marks the tag as not
// created. Version information that was already detected is kept.
func (o *Outputs) ClearTag() {
	o.TagCreated = false
	o.TagName = ""
	o.TagSHA = ""
	o.TagURI = ""
	o.TagMessage = ""
	o.TagRef = ""
	o.Tag = ""
}

// SetPublished fills the tag identifying outputs from a published tag
func (o *Outputs) SetPublished(tag *PublishedTag) error {
	raw, err := tag.JSON()
	if err != nil {
		return err
	}

	o.TagCreated = true
	o.TagName = tag.Name
	o.TagSHA = tag.SHA
	o.TagURI = tag.URI
	o.TagMessage = tag.Message
	o.TagRef = tag.Ref
	o.Tag = raw
	return nil
}

// List returns all outputs in a stable order
func (o *Outputs) List() []Output {
	return []Output{
		{Name: OutputTagCreated, Value: YesNo(o.TagCreated)},
		{Name: OutputVersion, Value: o.Version},
		{Name: OutputTagRequested, Value: o.TagRequested},
		{Name: OutputPrerelease, Value: YesNo(o.Prerelease)},
		{Name: OutputBuild, Value: YesNo(o.Build)},
		{Name: OutputTagName, Value: o.TagName},
		{Name: OutputTagSHA, Value: o.TagSHA},
		{Name: OutputTagURI, Value: o.TagURI},
		{Name: OutputTagMessage, Value: o.TagMessage},
		{Name: OutputTagRef, Value: o.TagRef},
		{Name: OutputTag, Value: o.Tag},
	}
}
