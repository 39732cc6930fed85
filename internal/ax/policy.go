package ax

import "fmt"

// Op names an element operation for error reporting and policy lookup.
type Op int

const (
	OpAttributes Op = iota
	OpAttribute
	OpSizeOf
	OpWritable
	OpSet
	OpParameterizedAttributes
	OpParameterizedAttribute
	OpActions
	OpPerform
	OpElementAt
	OpPID
	OpRole
	OpSubrole
	OpParent
	OpChildren
	OpSetTimeout
	OpPost
	OpInvalid
)

var opNames = [...]string{
	OpAttributes:              "attributes",
	OpAttribute:               "attribute",
	OpSizeOf:                  "size_of",
	OpWritable:                "writable",
	OpSet:                     "set",
	OpParameterizedAttributes: "parameterized_attributes",
	OpParameterizedAttribute:  "parameterized_attribute",
	OpActions:                 "actions",
	OpPerform:                 "perform",
	OpElementAt:               "element_at",
	OpPID:                     "pid",
	OpRole:                    "role",
	OpSubrole:                 "subrole",
	OpParent:                  "parent",
	OpChildren:                "children",
	OpSetTimeout:              "set_timeout",
	OpPost:                    "post",
	OpInvalid:                 "invalid",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Outcome is what an operation does with a status code.
type Outcome int

const (
	// Raise returns a *StatusError.
	Raise Outcome = iota
	// Nil returns a nil value.
	Nil
	// Empty returns an empty list.
	Empty
	// False returns false.
	False
	// Zero returns 0.
	Zero
	// RetrySystemWide repeats the call on the system-wide element, or
	// returns nil when the receiver already is the system-wide element.
	RetrySystemWide
	// ZeroIfSystemWide returns 0 for the system-wide element and raises
	// for any other.
	ZeroIfSystemWide
)

// policy lists the status codes each operation treats as benign. Codes
// missing from an operation's row raise.
var policy = map[Op]map[Code]Outcome{
	OpAttributes: {
		InvalidUIElement: Empty,
	},
	OpAttribute: {
		NoValue:              Nil,
		InvalidUIElement:     Nil,
		AttributeUnsupported: Nil,
	},
	OpSizeOf: {
		NoValue:          Zero,
		InvalidUIElement: Zero,
	},
	OpWritable: {
		NoValue:          False,
		InvalidUIElement: False,
	},
	OpSet: {},
	OpParameterizedAttributes: {
		NoValue:          Empty,
		InvalidUIElement: Empty,
	},
	OpParameterizedAttribute: {
		NoValue:          Nil,
		InvalidUIElement: Nil,
	},
	OpActions: {
		InvalidUIElement: Empty,
	},
	OpPerform: {
		InvalidUIElement: False,
	},
	OpElementAt: {
		NoValue:          Nil,
		InvalidUIElement: RetrySystemWide,
	},
	OpPID: {
		InvalidUIElement: ZeroIfSystemWide,
	},
	OpRole: {
		NoValue:          Nil,
		InvalidUIElement: Nil,
	},
	OpSubrole: {
		NoValue:          Nil,
		InvalidUIElement: Nil,
	},
	OpParent: {
		NoValue:          Nil,
		InvalidUIElement: Nil,
	},
	OpChildren: {
		NoValue:          Empty,
		InvalidUIElement: Empty,
	},
	OpSetTimeout: {},
	OpPost:       {},
	OpInvalid:    {},
}

// Classify returns the outcome op produces for code. Success is never
// passed here.
func Classify(op Op, code Code) Outcome {
	return policy[op][code]
}
