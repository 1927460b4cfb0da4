package hierarchy

// SampleDocument is a small built-in hierarchy used when no target is given,
// shaped like the element tree of a typical single-window application.
const SampleDocument = `{
  "role": "AXApplication", "title": "Sample App", "type": "application",
  "children": [
    {
      "role": "AXWindow", "subrole": "AXStandardWindow", "title": "Untitled",
      "type": "standard window",
      "children": [
        {
          "role": "AXToolbar", "type": "toolbar",
          "children": [
            {"role": "AXButton", "subrole": "AXToolbarButton", "title": "Back",
             "type": "toolbar button", "help": "Go back one page"},
            {"role": "AXButton", "subrole": "AXToolbarButton", "title": "Forward",
             "type": "toolbar button", "help": "Go forward one page"},
            {"role": "AXTextField", "subrole": "AXSearchField", "title": "Search",
             "type": "search text field", "help": "Search the document"}
          ]
        },
        {
          "role": "AXSplitGroup", "type": "split group",
          "children": [
            {
              "role": "AXScrollArea", "type": "scroll area",
              "children": [
                {
                  "role": "AXOutline", "type": "outline",
                  "children": [
                    {"role": "AXRow", "subrole": "AXOutlineRow", "title": "Favorites", "type": "outline row"},
                    {"role": "AXRow", "subrole": "AXOutlineRow", "title": "Projects", "type": "outline row"},
                    {"role": "AXRow", "subrole": "AXOutlineRow", "title": "Archive", "type": "outline row"}
                  ]
                }
              ]
            },
            {
              "role": "AXScrollArea", "type": "scroll area",
              "children": [
                {"role": "AXTextArea", "title": "Document", "type": "text area",
                 "help": "The document body"}
              ]
            }
          ]
        },
        {"role": "AXButton", "subrole": "AXCloseButton", "title": "Close",
         "type": "close button", "help": "Close the window"}
      ]
    },
    {
      "role": "AXMenuBar", "type": "menu bar",
      "children": [
        {"role": "AXMenuBarItem", "title": "File", "type": "menu bar item"},
        {"role": "AXMenuBarItem", "title": "Edit", "type": "menu bar item"},
        {"role": "AXMenuBarItem", "title": "View", "type": "menu bar item"}
      ]
    }
  ]
}`
